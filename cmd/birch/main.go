// Command birch is a small multi-command driver over the parser toolchain:
// tokenize prints the raw token stream, parse prints the AST (or, with
// -json, an ESTree-shaped debug dump produced through the visitor
// framework), and check reports syntax errors with the caret-underline
// formatter.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/cli"
	"github.com/mattn/go-isatty"

	"github.com/birchlang/birch"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ui := &cli.ColoredUi{
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      os.Stdout,
			ErrorWriter: os.Stderr,
		},
		OutputColor: cli.UiColorNone,
		InfoColor:   cli.UiColorNone,
		ErrorColor:  cli.UiColorRed,
		WarnColor:   cli.UiColorYellow,
	}

	c := cli.NewCLI("birch", birch.Version())
	c.Args = args
	c.Commands = map[string]cli.CommandFactory{
		"tokenize": func() (cli.Command, error) { return &TokenizeCommand{Ui: ui}, nil },
		"parse":    func() (cli.Command, error) { return &ParseCommand{Ui: ui}, nil },
		"check":    func() (cli.Command, error) { return &CheckCommand{Ui: ui, Colorize: isatty.IsTerminal(os.Stdout.Fd())}, nil },
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return exitStatus
}

func readSource(args []string) (path, source string, err error) {
	if len(args) < 1 {
		return "", "", fmt.Errorf("expected a file argument")
	}
	path = args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return path, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return path, string(data), nil
}
