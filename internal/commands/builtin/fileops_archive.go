package builtin

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cmcshell/internal/output"
	"cmcshell/pkg/cmctypes"
)

// ZipCommand packs a file or folder into a zip archive. The created
// archive is undoable like any other created artifact: undo removes it.
type ZipCommand struct{}

func (c *ZipCommand) Name() string        { return "zip" }
func (c *ZipCommand) Description() string { return "Pack a file or folder into a zip archive" }
func (c *ZipCommand) Usage() string       { return "zip '<src>' [to '<dir>']" }

func (c *ZipCommand) UsesConfirmGate() bool { return true }

func (c *ZipCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^zip\s+(?:'([^']*)'|(\S+?))(?:\s+to\s+(?:'([^']*)'|(\S+)))?$`),
	}
}

func (c *ZipCommand) Execute(args []string, line string) error {
	src := sessionCtx().Resolve(pick(args[0], args[1]))
	info, err := os.Stat(src)
	if err != nil {
		return cmctypes.NotFoundErrorf("no such path: %s", src)
	}
	dir := filepath.Dir(src)
	if target := pick(args[2], args[3]); target != "" {
		dir = sessionCtx().Resolve(target)
	}
	archive := filepath.Join(dir, strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))+".zip")
	if info.IsDir() {
		archive = filepath.Join(dir, filepath.Base(src)+".zip")
	}
	if pathExists(archive) {
		return cmctypes.ConflictErrorf("%s already exists", archive)
	}

	proceed, simulated := gate("Create archive " + archive)
	if !proceed {
		return cancelled("zip " + src)
	}
	if simulated {
		simulate("would pack " + src + " into " + archive)
		return nil
	}

	if err := writeZip(src, archive, info.IsDir()); err != nil {
		os.Remove(archive)
		return fmt.Errorf("cannot pack %s: %w", src, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoCopy,
		Dest: archive,
	})
	logAction("zip %s -> %s", src, archive)
	output.Println(output.Success("Packed into " + archive))
	return nil
}

// UnzipCommand extracts a zip archive into a new folder.
type UnzipCommand struct{}

func (c *UnzipCommand) Name() string        { return "unzip" }
func (c *UnzipCommand) Description() string { return "Extract a zip archive" }
func (c *UnzipCommand) Usage() string       { return "unzip '<zip>' [to '<dir>']" }

func (c *UnzipCommand) UsesConfirmGate() bool { return true }

func (c *UnzipCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^unzip\s+(?:'([^']*)'|(\S+?))(?:\s+to\s+(?:'([^']*)'|(\S+)))?$`),
	}
}

func (c *UnzipCommand) Execute(args []string, line string) error {
	src := sessionCtx().Resolve(pick(args[0], args[1]))
	if !pathExists(src) {
		return cmctypes.NotFoundErrorf("no such archive: %s", src)
	}
	dir := filepath.Dir(src)
	if target := pick(args[2], args[3]); target != "" {
		dir = sessionCtx().Resolve(target)
	}
	dest := filepath.Join(dir, strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)))
	if pathExists(dest) {
		return cmctypes.ConflictErrorf("%s already exists", dest)
	}

	proceed, simulated := gate("Extract " + src + " into " + dest)
	if !proceed {
		return cancelled("unzip " + src)
	}
	if simulated {
		simulate("would extract " + src + " into " + dest)
		return nil
	}

	if err := extractZip(src, dest); err != nil {
		os.RemoveAll(dest)
		return fmt.Errorf("cannot extract %s: %w", src, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind:  cmctypes.UndoCopy,
		Dest:  dest,
		IsDir: true,
	})
	logAction("unzip %s -> %s", src, dest)
	output.Println(output.Success("Extracted into " + dest))
	return nil
}

// BackupCommand copies an entry into the backup directory under a
// date-stamped name.
type BackupCommand struct{}

func (c *BackupCommand) Name() string        { return "backup" }
func (c *BackupCommand) Description() string { return "Copy an entry to a date-stamped backup" }
func (c *BackupCommand) Usage() string       { return "backup '<src>' '<dst>'" }

func (c *BackupCommand) UsesConfirmGate() bool { return true }

func (c *BackupCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^backup\s+(?:'([^']*)'|(\S+))\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *BackupCommand) Execute(args []string, line string) error {
	src := sessionCtx().Resolve(pick(args[0], args[1]))
	dir := sessionCtx().Resolve(pick(args[2], args[3]))

	info, err := os.Stat(src)
	if err != nil {
		return cmctypes.NotFoundErrorf("no such path: %s", src)
	}
	if !pathExists(dir) {
		return cmctypes.NotFoundErrorf("no such directory: %s", dir)
	}
	stamp := time.Now().Format("2006-01-02")
	dest := filepath.Join(dir, filepath.Base(src)+"_backup_"+stamp)
	if pathExists(dest) {
		return cmctypes.ConflictErrorf("%s already exists", dest)
	}

	proceed, simulated := gate("Backup " + src + " to " + dest)
	if !proceed {
		return cancelled("backup " + src)
	}
	if simulated {
		simulate("would back up " + src + " to " + dest)
		return nil
	}

	if info.IsDir() {
		err = copyTree(src, dest)
	} else {
		err = copyFile(src, dest)
	}
	if err != nil {
		return fmt.Errorf("cannot back up %s: %w", src, err)
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind:  cmctypes.UndoCopy,
		Dest:  dest,
		IsDir: info.IsDir(),
	})
	logAction("backup %s -> %s", src, dest)
	output.Println(output.Success("Backed up to " + dest))
	return nil
}

// writeZip packs src (file or directory) into a new archive at dest.
func writeZip(src, dest string, isDir bool) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer out.Close()
	zw := zip.NewWriter(out)

	add := func(path, name string) error {
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = io.Copy(w, in)
		return err
	}

	if !isDir {
		if err := add(src, filepath.Base(src)); err != nil {
			return err
		}
		return zw.Close()
	}
	base := filepath.Base(src)
	err = filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		return add(path, filepath.ToSlash(filepath.Join(base, rel)))
	})
	if err != nil {
		return err
	}
	return zw.Close()
}

// extractZip unpacks an archive into dest, refusing entries that would
// escape it.
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()
	for _, f := range r.File {
		target := filepath.Join(dest, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		in, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm()|0200)
		if err != nil {
			in.Close()
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			in.Close()
			out.Close()
			return err
		}
		in.Close()
		if err := out.Close(); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	mustRegister(&ZipCommand{})
	mustRegister(&UnzipCommand{})
	mustRegister(&BackupCommand{})
}
