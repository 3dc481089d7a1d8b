package services

import (
	"fmt"
	"os"

	"cmcshell/internal/context"
	"cmcshell/internal/logger"
	"cmcshell/pkg/cmctypes"
)

// UndoService applies the inverse procedure for each reversible operation
// kind. Undo of a single record is atomic: either it fully restores the
// prior state, or the record is re-pushed so the user can resolve the
// conflict and retry.
type UndoService struct {
	initialized bool
}

// NewUndoService creates an UndoService instance.
func NewUndoService() *UndoService {
	return &UndoService{}
}

// Name returns the service name "undo" for registration.
func (u *UndoService) Name() string { return "undo" }

// Initialize prepares the service for use.
func (u *UndoService) Initialize() error {
	u.initialized = true
	return nil
}

// UndoLast pops one record and inverts it. It returns a human-readable
// description of what was restored. When nothing is stacked it returns
// NotFound; when the inverse fails the record is re-pushed and the error
// returned.
func (u *UndoService) UndoLast() (string, error) {
	if !u.initialized {
		return "", fmt.Errorf("undo service not initialized")
	}
	stack := context.GetGlobalContext().Undo()
	record, ok := stack.Pop()
	if !ok {
		return "", cmctypes.NotFoundErrorf("nothing to undo")
	}

	desc, err := u.invert(record)
	if err != nil {
		stack.Push(record)
		logger.Warn("Undo failed, record kept", "kind", record.Kind, "error", err)
		return "", err
	}
	return desc, nil
}

// invert dispatches on the record kind. The switch is exhaustive over
// the closed UndoKind set; unknown kinds fail so the caller re-pushes.
func (u *UndoService) invert(r cmctypes.UndoRecord) (string, error) {
	switch r.Kind {
	case cmctypes.UndoMove:
		if err := os.Rename(r.Src, r.Dst); err != nil {
			return "", fmt.Errorf("cannot move back: %w", err)
		}
		return "Undid move, restored to " + r.Dst, nil

	case cmctypes.UndoRename:
		if err := os.Rename(r.Src, r.Dst); err != nil {
			return "", fmt.Errorf("cannot rename back: %w", err)
		}
		return "Undid rename, back to " + r.Dst, nil

	case cmctypes.UndoDelete:
		if _, err := os.Stat(r.Original); err == nil {
			return "", cmctypes.ConflictErrorf("original path %s is occupied", r.Original)
		}
		trash, err := GetGlobalTrashService()
		if err != nil {
			return "", err
		}
		if err := trash.RestoreTo(r.Trash, r.Original); err != nil {
			return "", fmt.Errorf("cannot restore from trash: %w", err)
		}
		return "Restored " + r.Original, nil

	case cmctypes.UndoCopy:
		// Remove the copy that was created, never the original.
		if err := os.RemoveAll(r.Dest); err != nil {
			return "", fmt.Errorf("cannot remove copy: %w", err)
		}
		return "Undid copy, removed " + r.Dest, nil

	case cmctypes.UndoWrite:
		if r.Existed {
			if err := os.WriteFile(r.Path, []byte(r.OldContent), 0644); err != nil {
				return "", fmt.Errorf("cannot restore content: %w", err)
			}
			return "Undid write, restored previous content of " + r.Path, nil
		}
		if err := os.Remove(r.Path); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("cannot remove written file: %w", err)
		}
		return "Undid write, removed " + r.Path, nil

	case cmctypes.UndoCreateFile:
		current, err := os.ReadFile(r.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return "File already gone: " + r.Path, nil
			}
			return "", err
		}
		if string(current) != r.CreatedContent {
			return "", cmctypes.ConflictErrorf("%s was modified after creation", r.Path)
		}
		if err := os.Remove(r.Path); err != nil {
			return "", err
		}
		return "Undid file creation, deleted " + r.Path, nil

	case cmctypes.UndoCreateFolder:
		entries, err := os.ReadDir(r.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return "Folder already gone: " + r.Path, nil
			}
			return "", err
		}
		if len(entries) > 0 {
			return "", cmctypes.ConflictErrorf("%s is no longer empty", r.Path)
		}
		if err := os.Remove(r.Path); err != nil {
			return "", err
		}
		return "Undid folder creation, deleted " + r.Path, nil

	case cmctypes.UndoMacroAdd:
		macros, err := GetGlobalMacroService()
		if err != nil {
			return "", err
		}
		if err := macros.RestoreAdd(r.Name, r.HadOld, r.OldSteps); err != nil {
			return "", err
		}
		if r.HadOld {
			return "Undid macro overwrite, restored " + r.Name, nil
		}
		return "Undid macro add, removed " + r.Name, nil

	case cmctypes.UndoMacroDelete:
		macros, err := GetGlobalMacroService()
		if err != nil {
			return "", err
		}
		if err := macros.RestoreDelete(r.Name, r.OldSteps); err != nil {
			return "", err
		}
		return "Restored macro " + r.Name, nil

	case cmctypes.UndoMacroClear:
		macros, err := GetGlobalMacroService()
		if err != nil {
			return "", err
		}
		if err := macros.RestoreClear(r.Snapshot); err != nil {
			return "", err
		}
		return fmt.Sprintf("Restored %d macro(s)", len(r.Snapshot)), nil

	case cmctypes.UndoAliasAdd:
		aliases, err := GetGlobalAliasService()
		if err != nil {
			return "", err
		}
		if err := aliases.RestoreAdd(r.Name, r.HadOld, r.OldBody); err != nil {
			return "", err
		}
		if r.HadOld {
			return "Undid alias overwrite, restored " + r.Name, nil
		}
		return "Undid alias add, removed " + r.Name, nil

	case cmctypes.UndoAliasDelete:
		aliases, err := GetGlobalAliasService()
		if err != nil {
			return "", err
		}
		if err := aliases.RestoreDelete(r.Name, r.OldBody); err != nil {
			return "", err
		}
		return "Restored alias " + r.Name, nil

	case cmctypes.UndoConfigChange:
		cfg, err := GetGlobalConfigService()
		if err != nil {
			return "", err
		}
		if err := cfg.Restore(r.OldConfig); err != nil {
			return "", err
		}
		return "Config restored to previous state", nil
	}

	return "", fmt.Errorf("cannot undo %q", r.Kind)
}
