package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/jira-issues-go/internal/git"
)

// ResolveCmd returns the resolve command.
func ResolveCmd() *cli.Command {
	flags := append(changesetFlags(), gitFlags()...)

	return &cli.Command{
		Name:    "resolve",
		Aliases: []string{"r"},
		Usage:   "Print the git log invocation a changeset resolves to",
		Flags:   flags,
		Action:  resolveAction,
	}
}

func resolveAction(c *cli.Context) error {
	cmdCtx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	reader := git.NewCLIReader(cmdCtx.ReadOptions(), git.ExecRunner{})

	w := c.App.Writer
	fmt.Fprintf(w, "Mode: %s\n", cmdCtx.Changeset.Modes()[0])
	fmt.Fprintf(w, "Command: git %s\n", quoteArgs(reader.Args()))
	return nil
}

// quoteArgs joins args for display, quoting those a shell would split.
func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'*?[]()$\\") {
			quoted[i] = strconv.Quote(a)
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}
