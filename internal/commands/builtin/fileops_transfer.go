package builtin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cmcshell/internal/output"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// MoveCommand moves a file or folder into a destination directory.
type MoveCommand struct{}

func (c *MoveCommand) Name() string        { return "move" }
func (c *MoveCommand) Description() string { return "Move a file or folder" }
func (c *MoveCommand) Usage() string       { return "move '<src>' to '<dst>'" }

func (c *MoveCommand) UsesConfirmGate() bool { return true }

func (c *MoveCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^move\s+(?:'([^']*)'|(\S+))\s+to\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *MoveCommand) Execute(args []string, line string) error {
	src := sessionCtx().Resolve(pick(args[0], args[1]))
	dst := sessionCtx().Resolve(pick(args[2], args[3]))

	if !pathExists(src) {
		return cmctypes.NotFoundErrorf("no such path: %s", src)
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	if pathExists(dst) {
		return cmctypes.ConflictErrorf("%s already exists", dst)
	}

	proceed, simulated := gate(fmt.Sprintf("Move %s → %s", src, dst))
	if !proceed {
		return cancelled("move " + src)
	}
	if simulated {
		simulate(fmt.Sprintf("would move %s to %s", src, dst))
		return nil
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("cannot move %s: %w", src, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoMove,
		Src:  dst,
		Dst:  src,
	})
	logAction("move %s -> %s", src, dst)
	output.Println(output.Success("Moved to " + dst))
	return nil
}

// CopyCommand copies a file or folder into a destination directory.
type CopyCommand struct{}

func (c *CopyCommand) Name() string        { return "copy" }
func (c *CopyCommand) Description() string { return "Copy a file or folder" }
func (c *CopyCommand) Usage() string       { return "copy '<src>' to '<dst>'" }

func (c *CopyCommand) UsesConfirmGate() bool { return true }

func (c *CopyCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^copy\s+(?:'([^']*)'|(\S+))\s+to\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *CopyCommand) Execute(args []string, line string) error {
	src := sessionCtx().Resolve(pick(args[0], args[1]))
	dst := sessionCtx().Resolve(pick(args[2], args[3]))

	info, err := os.Stat(src)
	if err != nil {
		return cmctypes.NotFoundErrorf("no such path: %s", src)
	}
	if dstInfo, err := os.Stat(dst); err == nil && dstInfo.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	if pathExists(dst) {
		return cmctypes.ConflictErrorf("%s already exists", dst)
	}

	proceed, simulated := gate(fmt.Sprintf("Copy %s → %s", src, dst))
	if !proceed {
		return cancelled("copy " + src)
	}
	if simulated {
		simulate(fmt.Sprintf("would copy %s to %s", src, dst))
		return nil
	}

	if info.IsDir() {
		err = copyTree(src, dst)
	} else {
		err = copyFile(src, dst)
	}
	if err != nil {
		return fmt.Errorf("cannot copy %s: %w", src, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind:  cmctypes.UndoCopy,
		Dest:  dst,
		IsDir: info.IsDir(),
	})
	logAction("copy %s -> %s", src, dst)
	output.Println(output.Success("Copied to " + dst))
	return nil
}

// RenameCommand renames an entry in place.
type RenameCommand struct{}

func (c *RenameCommand) Name() string        { return "rename" }
func (c *RenameCommand) Description() string { return "Rename a file or folder" }
func (c *RenameCommand) Usage() string       { return "rename '<src>' to '<new>'" }

func (c *RenameCommand) UsesConfirmGate() bool { return true }

func (c *RenameCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^rename\s+(?:'([^']*)'|(\S+))\s+to\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *RenameCommand) Execute(args []string, line string) error {
	src := sessionCtx().Resolve(pick(args[0], args[1]))
	newName := pick(args[2], args[3])

	if strings.ContainsAny(newName, `/\`) {
		return cmctypes.ValidationErrorf("new name must not contain path separators, use move instead")
	}
	if !pathExists(src) {
		return cmctypes.NotFoundErrorf("no such path: %s", src)
	}
	dst := filepath.Join(filepath.Dir(src), newName)
	if pathExists(dst) {
		return cmctypes.ConflictErrorf("%s already exists", dst)
	}

	proceed, simulated := gate(fmt.Sprintf("Rename %s → %s", filepath.Base(src), newName))
	if !proceed {
		return cancelled("rename " + src)
	}
	if simulated {
		simulate(fmt.Sprintf("would rename %s to %s", src, newName))
		return nil
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("cannot rename %s: %w", src, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoRename,
		Src:  dst,
		Dst:  src,
	})
	logAction("rename %s -> %s", src, dst)
	output.Println(output.Success("Renamed to " + dst))
	return nil
}

// DeleteCommand moves an entry into the trash holding area so the
// deletion stays reversible.
type DeleteCommand struct{}

func (c *DeleteCommand) Name() string        { return "delete" }
func (c *DeleteCommand) Description() string { return "Delete a file or folder (recoverable)" }
func (c *DeleteCommand) Usage() string       { return "delete '<path>'" }

func (c *DeleteCommand) UsesConfirmGate() bool { return true }

func (c *DeleteCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^delete\s+(?:'([^']*)'|(\S+))$`),
		cmctypes.Pattern(`^rm\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *DeleteCommand) Execute(args []string, line string) error {
	path := sessionCtx().Resolve(pick(args...))
	info, err := os.Stat(path)
	if err != nil {
		return cmctypes.NotFoundErrorf("no such path: %s", path)
	}

	proceed, simulated := gate("Delete " + path)
	if !proceed {
		return cancelled("delete " + path)
	}
	if simulated {
		simulate("would delete " + path)
		return nil
	}

	trash, err := services.GetGlobalTrashService()
	if err != nil {
		return err
	}
	dest, err := trash.Discard(path)
	if err != nil {
		return fmt.Errorf("cannot delete %s: %w", path, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind:     cmctypes.UndoDelete,
		Original: path,
		Trash:    dest,
		IsDir:    info.IsDir(),
	})
	logAction("delete %s", path)
	output.Println(output.Success("Deleted " + path + output.Dim(" (recoverable with undo)")))
	return nil
}

// copyFile copies one regular file preserving its mode.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyTree copies a directory recursively.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func init() {
	mustRegister(&MoveCommand{})
	mustRegister(&CopyCommand{})
	mustRegister(&RenameCommand{})
	mustRegister(&DeleteCommand{})
}
