// Package main is the entry point for the covreport CLI.
package main

import "covreport.dev/pkg/covreport/cmd"

func main() {
	cmd.Execute()
}
