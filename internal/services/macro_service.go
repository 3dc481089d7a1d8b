package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"cmcshell/internal/context"
	"cmcshell/internal/logger"
	"cmcshell/pkg/cmctypes"
)

// MacroEntry is one persisted macro: a name and the ordered raw command
// steps, pre-expansion. A list keeps insertion order.
type MacroEntry struct {
	Name  string   `yaml:"name"`
	Steps []string `yaml:"steps"`
}

// MacroService stores named command sequences. Names are
// case-insensitive. Every mutation is persisted synchronously and pushes
// an undo record. Running a macro is owned by the macro command, which
// feeds each step back through the full pipeline.
type MacroService struct {
	initialized bool
	path        string
	entries     []MacroEntry
}

// NewMacroService creates a MacroService instance.
func NewMacroService() *MacroService {
	return &MacroService{}
}

// Name returns the service name "macro" for registration.
func (m *MacroService) Name() string { return "macro" }

// Initialize loads the persisted macro store.
func (m *MacroService) Initialize() error {
	m.path = filepath.Join(ConfigDir(), "macros.yaml")
	data, err := os.ReadFile(m.path)
	if err == nil {
		if err := yaml.Unmarshal(data, &m.entries); err != nil {
			logger.Warn("Macro file unreadable, starting empty", "path", m.path, "error", err)
			m.entries = nil
		}
	}
	m.initialized = true
	logger.Debug("MacroService initialized", "count", len(m.entries))
	return nil
}

// Get returns the steps of a macro, case-insensitively.
func (m *MacroService) Get(name string) ([]string, bool) {
	for _, entry := range m.entries {
		if strings.EqualFold(entry.Name, name) {
			steps := make([]string, len(entry.Steps))
			copy(steps, entry.Steps)
			return steps, true
		}
	}
	return nil, false
}

// Exists reports whether a macro with the given name is stored.
func (m *MacroService) Exists(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Add stores a macro, replacing any existing entry of the same name, and
// pushes an undo record capturing the prior state. Confirmation of
// overwrites is the caller's concern; the store itself never prompts.
func (m *MacroService) Add(name string, steps []string) error {
	if !m.initialized {
		return fmt.Errorf("macro service not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return cmctypes.ValidationErrorf("macro name required")
	}
	if len(steps) == 0 {
		return cmctypes.ValidationErrorf("macro body required")
	}

	record := cmctypes.UndoRecord{Kind: cmctypes.UndoMacroAdd, Name: name}
	replaced := false
	for i, entry := range m.entries {
		if strings.EqualFold(entry.Name, name) {
			record.HadOld = true
			record.OldSteps = entry.Steps
			m.entries[i].Steps = steps
			replaced = true
			break
		}
	}
	if !replaced {
		m.entries = append(m.entries, MacroEntry{Name: name, Steps: steps})
	}

	if err := m.save(); err != nil {
		return err
	}
	context.GetGlobalContext().Undo().Push(record)
	return nil
}

// Delete removes a macro, failing with NotFound when absent.
func (m *MacroService) Delete(name string) error {
	if !m.initialized {
		return fmt.Errorf("macro service not initialized")
	}
	for i, entry := range m.entries {
		if strings.EqualFold(entry.Name, name) {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			if err := m.save(); err != nil {
				return err
			}
			context.GetGlobalContext().Undo().Push(cmctypes.UndoRecord{
				Kind:     cmctypes.UndoMacroDelete,
				Name:     entry.Name,
				OldSteps: entry.Steps,
				HadOld:   true,
			})
			return nil
		}
	}
	return cmctypes.NotFoundErrorf("macro %q", name)
}

// Clear removes every macro, pushing one undo record with the full
// prior store.
func (m *MacroService) Clear() error {
	if !m.initialized {
		return fmt.Errorf("macro service not initialized")
	}
	snapshot := make(map[string][]string, len(m.entries))
	for _, entry := range m.entries {
		snapshot[entry.Name] = entry.Steps
	}
	m.entries = nil
	if err := m.save(); err != nil {
		return err
	}
	context.GetGlobalContext().Undo().Push(cmctypes.UndoRecord{
		Kind:     cmctypes.UndoMacroClear,
		Snapshot: snapshot,
	})
	return nil
}

// List returns all macros in insertion order.
func (m *MacroService) List() []MacroEntry {
	out := make([]MacroEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// RestoreAdd inverts a macro add: remove the entry, or put the previous
// steps back when the add was an overwrite. Undo-service use only.
func (m *MacroService) RestoreAdd(name string, hadOld bool, oldSteps []string) error {
	for i, entry := range m.entries {
		if strings.EqualFold(entry.Name, name) {
			if hadOld {
				m.entries[i].Steps = oldSteps
			} else {
				m.entries = append(m.entries[:i], m.entries[i+1:]...)
			}
			return m.save()
		}
	}
	if hadOld {
		m.entries = append(m.entries, MacroEntry{Name: name, Steps: oldSteps})
		return m.save()
	}
	return nil
}

// RestoreDelete inverts a macro delete by re-adding the entry.
func (m *MacroService) RestoreDelete(name string, steps []string) error {
	m.entries = append(m.entries, MacroEntry{Name: name, Steps: steps})
	return m.save()
}

// RestoreClear inverts a macro clear from the recorded snapshot.
func (m *MacroService) RestoreClear(snapshot map[string][]string) error {
	for name, steps := range snapshot {
		if !m.Exists(name) {
			m.entries = append(m.entries, MacroEntry{Name: name, Steps: steps})
		}
	}
	return m.save()
}

func (m *MacroService) save() error {
	data, err := yaml.Marshal(m.entries)
	if err != nil {
		return fmt.Errorf("cannot encode macros: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0750); err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return fmt.Errorf("cannot persist macros: %w", err)
	}
	return nil
}
