// Package main provides the CMC Shell CLI application entry point.
// CMC is an interactive command console: comma-chained commands, user
// aliases and macros, and a bounded undo history for file operations.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/abiosoft/ishell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cmcshell/internal/logger"
	"cmcshell/internal/shell"
	"cmcshell/pkg/cmctypes"
)

var (
	logLevel string
	logFile  string
	oneLine  string
	version  = "0.1.0" // This could be set at build time
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cmc",
	Short: "CMC Shell - interactive command console",
	Long: `CMC is an interactive command console for everyday file work.
Commands chain with commas, destructive operations ask first and stay
undoable, and aliases and macros persist between sessions.`,
	Run: runShell, // Default behavior is to run the interactive shell
}

// runCmd executes a single command line and exits, for scripting.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one command line and exit",
	Long: `Execute a single command line non-interactively.
Exits 0 on success, 1 on a startup error, 2 when the input was not
recognized as a command.`,
	Run: runOneLine,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("CMC Shell v%s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	runCmd.Flags().StringVarP(&oneLine, "command", "c", "", "Command line to execute")

	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-file flag: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(logLevel, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting CMC Shell", "version", version)

	if err := shell.InitializeServices(); err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}

	sh := ishell.New()
	sh.SetPrompt("cmc> ")

	// Remove ishell's own commands so everything funnels through the router.
	sh.DeleteCmd("exit")
	sh.DeleteCmd("help")
	sh.DeleteCmd("clear")

	sh.Println(fmt.Sprintf("CMC Shell v%s", version))
	sh.Println("Chain commands with commas. Type 'help' for the command list, 'exit' to quit.")

	sh.NotFound(shell.ProcessInput)

	sh.Run()
}

func runOneLine(_ *cobra.Command, _ []string) {
	if oneLine == "" {
		fmt.Fprintln(os.Stderr, "run needs a command line, e.g.: cmc run -c \"list\"")
		os.Exit(1)
	}

	if err := shell.InitializeServices(); err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	err := shell.RunLine(oneLine)
	shell.DrainWorkerEvents()
	if err != nil {
		if errors.Is(err, cmctypes.ErrUnknownCommand) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
