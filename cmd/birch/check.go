package main

import (
	"strings"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-multierror"

	"github.com/birchlang/birch"
	"github.com/birchlang/birch/pkg/errs"
)

// CheckCommand parses a file and exits non-zero with every ParseError
// printed via the C6 caret-underline formatter on failure.
type CheckCommand struct {
	Ui       cli.Ui
	Colorize bool
}

func (c *CheckCommand) Help() string {
	return strings.TrimSpace(`
Usage: birch check <file>

  Parses <file> and reports every syntax error found, each with a
  caret-underline pointing at the offending span. Exits 0 if <file> parses
  cleanly, 1 otherwise.
`)
}

func (c *CheckCommand) Synopsis() string {
	return "Check a source file for syntax errors"
}

func (c *CheckCommand) Run(args []string) int {
	path, source, err := readSource(args)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	_, parseErr := birch.Parse(source)
	if parseErr == nil {
		c.Ui.Output(path + ": OK")
		return 0
	}

	for _, pe := range parseErrors(parseErr) {
		c.Ui.Error(pe.Format(c.Colorize))
	}
	return 1
}

// parseErrors unwraps the *multierror.Error birch.Parse returns into its
// individual *errs.ParseError causes, in order.
func parseErrors(err error) []*errs.ParseError {
	merr, ok := err.(*multierror.Error)
	if !ok {
		return nil
	}
	out := make([]*errs.ParseError, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		if pe, ok := e.(*errs.ParseError); ok {
			out = append(out, pe)
		}
	}
	return out
}
