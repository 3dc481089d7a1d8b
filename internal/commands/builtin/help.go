package builtin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"cmcshell/internal/commands"
	"cmcshell/internal/output"
	"cmcshell/pkg/cmctypes"
)

// HelpCommand renders command reference as markdown. With a topic it
// shows one command, otherwise the whole table.
type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Show command reference" }
func (c *HelpCommand) Usage() string       { return "help [command]" }

func (c *HelpCommand) UsesConfirmGate() bool { return false }

func (c *HelpCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("help"),
		cmctypes.Pattern(`^help\s+(.+)$`),
	}
}

func (c *HelpCommand) Execute(args []string, line string) error {
	topic := strings.ToLower(strings.TrimSpace(pick(args...)))

	var md string
	if topic == "" {
		md = c.referenceMarkdown()
	} else {
		cmd, ok := c.lookup(topic)
		if !ok {
			return cmctypes.NotFoundErrorf("no command named %q, try plain help", topic)
		}
		md = c.topicMarkdown(cmd)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// No styled rendering available, print the raw markdown.
		output.Println(md)
		return nil
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		output.Println(md)
		return nil
	}
	output.Println(strings.TrimRight(rendered, "\n"))
	return nil
}

func (c *HelpCommand) lookup(topic string) (cmctypes.Command, bool) {
	for _, cmd := range commands.GetGlobalRouter().All() {
		if strings.EqualFold(cmd.Name(), topic) {
			return cmd, true
		}
	}
	return nil, false
}

func (c *HelpCommand) topicMarkdown(cmd cmctypes.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", cmd.Name(), cmd.Description())
	fmt.Fprintf(&b, "```\n%s\n```\n", cmd.Usage())
	if cmd.UsesConfirmGate() {
		b.WriteString("\nAsks for confirmation; honors batch and dry-run.\n")
	}
	return b.String()
}

func (c *HelpCommand) referenceMarkdown() string {
	all := commands.GetGlobalRouter().All()
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })

	var b strings.Builder
	b.WriteString("# CMC Shell\n\n")
	b.WriteString("Chain commands with commas: `cd '/tmp', list`.\n")
	b.WriteString("Placeholders `%DATE%`, `%NOW%` and `%HOME%` expand before execution.\n\n")
	b.WriteString("| Command | Description |\n|---|---|\n")
	for _, cmd := range all {
		fmt.Fprintf(&b, "| `%s` | %s |\n", cmd.Usage(), cmd.Description())
	}
	b.WriteString("\nCommands marked with a confirmation prompt skip the prompt under " +
		"`batch on` and only report under `dry-run on`. Commands without a prompt " +
		"run even under dry-run.\n")
	return b.String()
}

func init() {
	mustRegister(&HelpCommand{})
}
