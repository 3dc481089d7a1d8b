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

// AliasEntry is one persisted alias. A list keeps insertion order, which
// a yaml mapping would not.
type AliasEntry struct {
	Name string `yaml:"name"`
	Body string `yaml:"body"`
}

// AliasService stores user aliases: short name to a single stored command
// string. Names are case-insensitive. Every mutation is persisted
// synchronously and pushes an undo record capturing the prior state.
type AliasService struct {
	initialized bool
	path        string
	entries     []AliasEntry
}

// NewAliasService creates an AliasService instance.
func NewAliasService() *AliasService {
	return &AliasService{}
}

// Name returns the service name "alias" for registration.
func (a *AliasService) Name() string { return "alias" }

// Initialize loads the persisted alias table.
func (a *AliasService) Initialize() error {
	a.path = filepath.Join(ConfigDir(), "aliases.yaml")
	data, err := os.ReadFile(a.path)
	if err == nil {
		if err := yaml.Unmarshal(data, &a.entries); err != nil {
			logger.Warn("Alias file unreadable, starting empty", "path", a.path, "error", err)
			a.entries = nil
		}
	}
	a.initialized = true
	logger.Debug("AliasService initialized", "count", len(a.entries))
	return nil
}

// Resolve returns the stored body for a name, case-insensitively.
func (a *AliasService) Resolve(name string) (string, bool) {
	for _, entry := range a.entries {
		if strings.EqualFold(entry.Name, name) {
			return entry.Body, true
		}
	}
	return "", false
}

// Add stores an alias, overwriting silently if the name exists. The body
// must be exactly one command: embedded separators are rejected.
func (a *AliasService) Add(name, body string) error {
	if !a.initialized {
		return fmt.Errorf("alias service not initialized")
	}
	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)
	if name == "" {
		return cmctypes.ValidationErrorf("alias name required")
	}
	if body == "" {
		return cmctypes.ValidationErrorf("alias command required")
	}
	if containsTopLevelComma(body) {
		return cmctypes.ValidationErrorf("alias body must be a single command (no ',')")
	}

	record := cmctypes.UndoRecord{Kind: cmctypes.UndoAliasAdd, Name: name}
	replaced := false
	for i, entry := range a.entries {
		if strings.EqualFold(entry.Name, name) {
			record.HadOld = true
			record.OldBody = entry.Body
			a.entries[i].Body = body
			replaced = true
			break
		}
	}
	if !replaced {
		a.entries = append(a.entries, AliasEntry{Name: name, Body: body})
	}

	if err := a.save(); err != nil {
		return err
	}
	context.GetGlobalContext().Undo().Push(record)
	return nil
}

// Delete removes an alias, failing with NotFound when absent.
func (a *AliasService) Delete(name string) error {
	if !a.initialized {
		return fmt.Errorf("alias service not initialized")
	}
	for i, entry := range a.entries {
		if strings.EqualFold(entry.Name, name) {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			if err := a.save(); err != nil {
				return err
			}
			context.GetGlobalContext().Undo().Push(cmctypes.UndoRecord{
				Kind:    cmctypes.UndoAliasDelete,
				Name:    entry.Name,
				OldBody: entry.Body,
				HadOld:  true,
			})
			return nil
		}
	}
	return cmctypes.NotFoundErrorf("alias %q", name)
}

// List returns all aliases in insertion order.
func (a *AliasService) List() []AliasEntry {
	out := make([]AliasEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// RestoreAdd inverts an alias add: remove the entry, or put the previous
// body back when the add was an overwrite. Used by the undo service only;
// it persists but pushes no further records.
func (a *AliasService) RestoreAdd(name string, hadOld bool, oldBody string) error {
	for i, entry := range a.entries {
		if strings.EqualFold(entry.Name, name) {
			if hadOld {
				a.entries[i].Body = oldBody
			} else {
				a.entries = append(a.entries[:i], a.entries[i+1:]...)
			}
			return a.save()
		}
	}
	if hadOld {
		a.entries = append(a.entries, AliasEntry{Name: name, Body: oldBody})
		return a.save()
	}
	return nil
}

// RestoreDelete inverts an alias delete by re-adding the entry.
func (a *AliasService) RestoreDelete(name, body string) error {
	a.entries = append(a.entries, AliasEntry{Name: name, Body: body})
	return a.save()
}

func (a *AliasService) save() error {
	data, err := yaml.Marshal(a.entries)
	if err != nil {
		return fmt.Errorf("cannot encode aliases: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(a.path), 0750); err != nil {
		return err
	}
	if err := os.WriteFile(a.path, data, 0600); err != nil {
		return fmt.Errorf("cannot persist aliases: %w", err)
	}
	return nil
}

// containsTopLevelComma reports whether s has a comma outside quotes.
func containsTopLevelComma(s string) bool {
	var quote rune
	for _, ch := range s {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == ',':
			return true
		}
	}
	return false
}
