package builtin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"

	"cmcshell/internal/output"
	"cmcshell/pkg/cmctypes"
)

// CreateFileCommand creates a new file, optionally with initial content.
type CreateFileCommand struct{}

func (c *CreateFileCommand) Name() string { return "create file" }

func (c *CreateFileCommand) Description() string { return "Create a new file" }

func (c *CreateFileCommand) Usage() string {
	return `create file '<name>' in '<dir>' [with text="…"]`
}

func (c *CreateFileCommand) UsesConfirmGate() bool { return true }

func (c *CreateFileCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^create\s+file\s+(?:'([^']*)'|(\S+))\s+in\s+(?:'([^']*)'|(\S+?))(?:\s+with\s+text=(?:"([^"]*)"|'([^']*)'))?$`),
	}
}

func (c *CreateFileCommand) Execute(args []string, line string) error {
	name := pick(args[0], args[1])
	dir := sessionCtx().Resolve(pick(args[2], args[3]))
	content := pick(args[4], args[5])

	target := filepath.Join(dir, name)
	if pathExists(target) {
		return cmctypes.ConflictErrorf("%s already exists", target)
	}
	if !pathExists(dir) {
		return cmctypes.NotFoundErrorf("no such directory: %s", dir)
	}

	proceed, simulated := gate("Create file " + target)
	if !proceed {
		return cancelled("create file " + target)
	}
	if simulated {
		simulate("would create " + target)
		return nil
	}

	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("cannot create %s: %w", target, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind:           cmctypes.UndoCreateFile,
		Path:           target,
		CreatedContent: content,
	})
	logAction("create file %s", target)
	output.Println(output.Success("Created " + target))
	return nil
}

// CreateFolderCommand creates a new directory.
type CreateFolderCommand struct{}

func (c *CreateFolderCommand) Name() string { return "create folder" }

func (c *CreateFolderCommand) Description() string { return "Create a new folder" }

func (c *CreateFolderCommand) Usage() string { return "create folder '<name>' in '<dir>'" }

func (c *CreateFolderCommand) UsesConfirmGate() bool { return true }

func (c *CreateFolderCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^create\s+folder\s+(?:'([^']*)'|(\S+))\s+in\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *CreateFolderCommand) Execute(args []string, line string) error {
	name := pick(args[0], args[1])
	dir := sessionCtx().Resolve(pick(args[2], args[3]))

	target := filepath.Join(dir, name)
	if pathExists(target) {
		return cmctypes.ConflictErrorf("%s already exists", target)
	}
	if !pathExists(dir) {
		return cmctypes.NotFoundErrorf("no such directory: %s", dir)
	}

	proceed, simulated := gate("Create folder " + target)
	if !proceed {
		return cancelled("create folder " + target)
	}
	if simulated {
		simulate("would create " + target)
		return nil
	}

	if err := os.Mkdir(target, 0755); err != nil {
		return fmt.Errorf("cannot create %s: %w", target, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoCreateFolder,
		Path: target,
	})
	logAction("create folder %s", target)
	output.Println(output.Success("Created " + target))
	return nil
}

// WriteCommand replaces the content of a file, creating it when absent.
// The simulate-only preview renders a diff against the current content.
type WriteCommand struct{}

func (c *WriteCommand) Name() string { return "write" }

func (c *WriteCommand) Description() string { return "Write text into a file" }

func (c *WriteCommand) Usage() string { return `write '<file>' text='…'` }

func (c *WriteCommand) UsesConfirmGate() bool { return true }

func (c *WriteCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^write\s+(?:'([^']*)'|(\S+))\s+(?:text=(?:"([^"]*)"|'([^']*)')|(.+))$`),
	}
}

func (c *WriteCommand) Execute(args []string, line string) error {
	path := sessionCtx().Resolve(pick(args[0], args[1]))
	text := pick(args[2], args[3], args[4])

	existed := pathExists(path)
	old := ""
	if existed {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		old = string(data)
	}

	proceed, simulated := gate("Write " + path)
	if !proceed {
		return cancelled("write " + path)
	}
	if simulated {
		if existed {
			dmp := diffmatchpatch.New()
			diffs := dmp.DiffMain(old, text, false)
			simulate("would overwrite " + path + ":")
			output.Println(dmp.DiffPrettyText(diffs))
		} else {
			simulate("would create " + path + " with the given text")
		}
		return nil
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind:       cmctypes.UndoWrite,
		Path:       path,
		Existed:    existed,
		OldContent: old,
	})
	logAction("write %s", path)
	output.Println(output.Success("Wrote " + path))
	return nil
}

func init() {
	mustRegister(&CreateFileCommand{})
	mustRegister(&CreateFolderCommand{})
	mustRegister(&WriteCommand{})
}
