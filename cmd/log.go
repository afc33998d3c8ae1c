package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// progress prints run progress to stderr unless --quiet is set.
type progress struct {
	out   io.Writer
	quiet bool
}

func newProgress(c *cli.Context) *progress {
	out := c.App.ErrWriter
	if out == nil {
		out = color.Error
	}
	return &progress{out: out, quiet: c.Bool("quiet")}
}

func (p *progress) print(attr color.Attribute, format string, a ...interface{}) {
	if p.quiet {
		return
	}
	color.New(attr).Fprintln(p.out, fmt.Sprintf(format, a...))
}

// phase announces a pipeline step.
func (p *progress) phase(format string, a ...interface{}) {
	p.print(color.FgGreen, format, a...)
}

// count reports a tally.
func (p *progress) count(format string, a ...interface{}) {
	p.print(color.FgYellow, format, a...)
}

func (p *progress) warn(format string, a ...interface{}) {
	p.print(color.FgCyan, format, a...)
}

func (p *progress) info(format string, a ...interface{}) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", a...)
}

// writer returns where step outputs go when GITHUB_OUTPUT is not set.
func (p *progress) writer() io.Writer {
	if p.quiet {
		return io.Discard
	}
	return p.out
}
