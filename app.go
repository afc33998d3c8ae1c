package main

import "github.com/masmgr/jira-issues-go/cmd"

func main() {
	cmd.Run()
}
