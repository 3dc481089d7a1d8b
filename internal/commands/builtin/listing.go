package builtin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cmcshell/internal/output"
	"cmcshell/pkg/cmctypes"
)

// ListCommand shows the entries of a directory, folders first.
type ListCommand struct{}

func (c *ListCommand) Name() string        { return "list" }
func (c *ListCommand) Description() string { return "List directory contents" }
func (c *ListCommand) Usage() string       { return "list ['<path>']" }

func (c *ListCommand) UsesConfirmGate() bool { return false }

func (c *ListCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("list"),
		cmctypes.Literal("ls"),
		cmctypes.Pattern(`^(?:list|ls)\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *ListCommand) Execute(args []string, line string) error {
	dir := sessionCtx().Cwd()
	if target := pick(args...); target != "" {
		dir = sessionCtx().Resolve(target)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return cmctypes.NotFoundErrorf("cannot list %s: %v", dir, err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})
	output.Println(output.PanelTitle(dir))
	for _, e := range entries {
		if e.IsDir() {
			output.Println("  " + output.Accent(e.Name()+"/"))
			continue
		}
		size := ""
		if info, err := e.Info(); err == nil {
			size = output.Dim("  " + humanSize(info.Size()))
		}
		output.Println("  " + e.Name() + size)
	}
	if len(entries) == 0 {
		output.Println(output.Dim("  (empty)"))
	}
	return nil
}

// InfoCommand prints metadata for one path.
type InfoCommand struct{}

func (c *InfoCommand) Name() string        { return "info" }
func (c *InfoCommand) Description() string { return "Show size, type and timestamps for a path" }
func (c *InfoCommand) Usage() string       { return "info '<path>'" }

func (c *InfoCommand) UsesConfirmGate() bool { return false }

func (c *InfoCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^info\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *InfoCommand) Execute(args []string, line string) error {
	path := sessionCtx().Resolve(pick(args...))
	info, err := os.Stat(path)
	if err != nil {
		return cmctypes.NotFoundErrorf("no such path: %s", path)
	}
	kind := "file"
	size := humanSize(info.Size())
	if info.IsDir() {
		kind = "folder"
		size = humanSize(dirSize(path))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", path)
	fmt.Fprintf(&b, "type:     %s\n", kind)
	fmt.Fprintf(&b, "size:     %s\n", size)
	fmt.Fprintf(&b, "modified: %s", info.ModTime().Format("2006-01-02 15:04:05"))
	output.Println(output.Panel(b.String()))
	return nil
}

// ReadCommand prints a text file, optionally only the first N lines.
type ReadCommand struct{}

func (c *ReadCommand) Name() string        { return "read" }
func (c *ReadCommand) Description() string { return "Print a text file" }
func (c *ReadCommand) Usage() string       { return "read '<file>' [head=N]" }

func (c *ReadCommand) UsesConfirmGate() bool { return false }

func (c *ReadCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^read\s+(?:'([^']*)'|(\S+?))(?:\s+head=(\d+))?$`),
	}
}

func (c *ReadCommand) Execute(args []string, line string) error {
	path := sessionCtx().Resolve(pick(args[0], args[1]))
	data, err := os.ReadFile(path)
	if err != nil {
		return cmctypes.NotFoundErrorf("cannot read %s: %v", path, err)
	}
	text := strings.TrimRight(string(data), "\n")
	if len(args) > 2 && args[2] != "" {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 1 {
			return cmctypes.ValidationErrorf("head must be a positive number")
		}
		lines := strings.Split(text, "\n")
		if n < len(lines) {
			text = strings.Join(lines[:n], "\n") + "\n" + output.Dim(fmt.Sprintf("… (%d more lines)", len(lines)-n))
		}
	}
	output.Println(output.PanelTitle(filepath.Base(path)))
	output.Println(text)
	return nil
}

// humanSize renders a byte count the way the status panel expects it.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// dirSize sums file sizes under root, ignoring unreadable entries.
func dirSize(root string) int64 {
	var total int64
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

func init() {
	mustRegister(&ListCommand{})
	mustRegister(&InfoCommand{})
	mustRegister(&ReadCommand{})
}
