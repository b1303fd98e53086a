package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Analyze *AnalyzeCommand
	Tasks   *TasksCommand
	Import  *ImportCommand
	List    *ListCommand
	Remove  *RemoveCommand
	Status  *StatusCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "mainthread"
	parser.LongDescription = "Reconstruct main-thread task trees from Chrome traces and break down where the time went."

	cmds := &commands{
		Analyze: &AnalyzeCommand{globals: &globals, version: version},
		Tasks:   &TasksCommand{globals: &globals, version: version},
		Import:  &ImportCommand{globals: &globals, version: version},
		List:    &ListCommand{globals: &globals, version: version},
		Remove:  &RemoveCommand{globals: &globals, version: version},
		Status:  &StatusCommand{globals: &globals, version: version},
	}

	parser.AddCommand("analyze", "Break down main-thread time", "Build the task forest of each trace and print self-time by category and by URL.", cmds.Analyze)
	parser.AddCommand("tasks", "Print the task tree of a trace", "Print the reconstructed main-thread task tree of one trace.", cmds.Tasks)
	parser.AddCommand("import", "Archive a trace file", "Store a raw trace file in the local archive for later analysis.", cmds.Import)
	parser.AddCommand("list", "List archived traces", "List archived traces, newest first.", cmds.List)
	parser.AddCommand("remove", "Delete an archived trace", "Delete an archived trace by ID.", cmds.Remove)
	parser.AddCommand("status", "Show archive statistics", "Show archive statistics and a configuration summary.", cmds.Status)

	return parser, &globals, cmds
}

// Run is the main entry point for the mainthread CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("mainthread %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
