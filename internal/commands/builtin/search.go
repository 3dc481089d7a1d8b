package builtin

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cmcshell/internal/output"
	"cmcshell/pkg/cmctypes"
)

// searchLimit caps how many hits the search commands print.
const searchLimit = 50

// walkFiles visits every regular file under root, skipping unreadable
// subtrees instead of aborting the whole walk.
func walkFiles(root string, visit func(path string, info os.FileInfo)) {
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			visit(path, info)
		}
		return nil
	})
}

// FindCommand searches for files and folders by name fragment.
type FindCommand struct{}

func (c *FindCommand) Name() string        { return "find" }
func (c *FindCommand) Description() string { return "Find entries whose name contains a fragment" }
func (c *FindCommand) Usage() string       { return "find '<name>'" }

func (c *FindCommand) UsesConfirmGate() bool { return false }

func (c *FindCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^find\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *FindCommand) Execute(args []string, line string) error {
	needle := strings.ToLower(pick(args...))
	if needle == "" {
		return cmctypes.ValidationErrorf("find needs a name fragment")
	}
	root := sessionCtx().Cwd()
	hits := 0
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}
		if hits >= searchLimit {
			return filepath.SkipAll
		}
		if path != root && strings.Contains(strings.ToLower(d.Name()), needle) {
			output.Println("  " + relTo(root, path))
			hits++
		}
		return nil
	})
	reportHits(hits, needle)
	return nil
}

// FindextCommand lists files carrying a given extension.
type FindextCommand struct{}

func (c *FindextCommand) Name() string        { return "findext" }
func (c *FindextCommand) Description() string { return "Find files by extension" }
func (c *FindextCommand) Usage() string       { return "findext '.ext'" }

func (c *FindextCommand) UsesConfirmGate() bool { return false }

func (c *FindextCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^findext\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *FindextCommand) Execute(args []string, line string) error {
	ext := strings.ToLower(pick(args...))
	if ext == "" {
		return cmctypes.ValidationErrorf("findext needs an extension")
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	root := sessionCtx().Cwd()
	hits := 0
	walkFiles(root, func(path string, info os.FileInfo) {
		if hits >= searchLimit {
			return
		}
		if strings.EqualFold(filepath.Ext(path), ext) {
			output.Println("  " + relTo(root, path))
			hits++
		}
	})
	reportHits(hits, ext)
	return nil
}

// SearchCommand greps file contents under the working directory.
type SearchCommand struct{}

func (c *SearchCommand) Name() string        { return "search" }
func (c *SearchCommand) Description() string { return "Search file contents for a text fragment" }
func (c *SearchCommand) Usage() string       { return "search '<text>'" }

func (c *SearchCommand) UsesConfirmGate() bool { return false }

func (c *SearchCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^search\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *SearchCommand) Execute(args []string, line string) error {
	needle := pick(args...)
	if needle == "" {
		return cmctypes.ValidationErrorf("search needs a text fragment")
	}
	root := sessionCtx().Cwd()
	hits := 0
	walkFiles(root, func(path string, info os.FileInfo) {
		if hits >= searchLimit || info.Size() > 4<<20 {
			return
		}
		f, err := os.Open(path)
		if err != nil {
			return
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for lineNo := 1; scanner.Scan(); lineNo++ {
			if strings.Contains(scanner.Text(), needle) {
				output.Printf("  %s%s\n", relTo(root, path), output.Dim(fmt.Sprintf(":%d", lineNo)))
				hits++
				break
			}
		}
	})
	reportHits(hits, needle)
	return nil
}

// RecentCommand lists the ten most recently modified files.
type RecentCommand struct{}

func (c *RecentCommand) Name() string        { return "recent" }
func (c *RecentCommand) Description() string { return "Show the most recently modified files" }
func (c *RecentCommand) Usage() string       { return "recent ['<path>']" }

func (c *RecentCommand) UsesConfirmGate() bool { return false }

func (c *RecentCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("recent"),
		cmctypes.Pattern(`^recent\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *RecentCommand) Execute(args []string, line string) error {
	root := sessionCtx().Cwd()
	if target := pick(args...); target != "" {
		root = sessionCtx().Resolve(target)
	}
	type hit struct {
		path string
		mod  time.Time
	}
	var hits []hit
	walkFiles(root, func(path string, info os.FileInfo) {
		hits = append(hits, hit{path: path, mod: info.ModTime()})
	})
	sort.Slice(hits, func(i, j int) bool { return hits[i].mod.After(hits[j].mod) })
	if len(hits) > 10 {
		hits = hits[:10]
	}
	for _, h := range hits {
		output.Printf("  %s  %s\n", output.Dim(h.mod.Format("2006-01-02 15:04")), relTo(root, h.path))
	}
	if len(hits) == 0 {
		output.Println(output.Dim("No files found."))
	}
	return nil
}

// BiggestCommand lists the ten largest files.
type BiggestCommand struct{}

func (c *BiggestCommand) Name() string        { return "biggest" }
func (c *BiggestCommand) Description() string { return "Show the largest files" }
func (c *BiggestCommand) Usage() string       { return "biggest ['<path>']" }

func (c *BiggestCommand) UsesConfirmGate() bool { return false }

func (c *BiggestCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("biggest"),
		cmctypes.Pattern(`^biggest\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *BiggestCommand) Execute(args []string, line string) error {
	root := sessionCtx().Cwd()
	if target := pick(args...); target != "" {
		root = sessionCtx().Resolve(target)
	}
	type hit struct {
		path string
		size int64
	}
	var hits []hit
	walkFiles(root, func(path string, info os.FileInfo) {
		hits = append(hits, hit{path: path, size: info.Size()})
	})
	sort.Slice(hits, func(i, j int) bool { return hits[i].size > hits[j].size })
	if len(hits) > 10 {
		hits = hits[:10]
	}
	for _, h := range hits {
		output.Printf("  %10s  %s\n", humanSize(h.size), relTo(root, h.path))
	}
	if len(hits) == 0 {
		output.Println(output.Dim("No files found."))
	}
	return nil
}

// relTo shortens path for display when it lives under root.
func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func reportHits(hits int, needle string) {
	switch {
	case hits == 0:
		output.Println(output.Dim("No matches for " + needle + "."))
	case hits >= searchLimit:
		output.Printf("%s\n", output.Dim(fmt.Sprintf("Stopped after %d matches.", searchLimit)))
	default:
		output.Printf("%s\n", output.Dim(fmt.Sprintf("%d match(es).", hits)))
	}
}

func init() {
	mustRegister(&FindCommand{})
	mustRegister(&FindextCommand{})
	mustRegister(&SearchCommand{})
	mustRegister(&RecentCommand{})
	mustRegister(&BiggestCommand{})
}
