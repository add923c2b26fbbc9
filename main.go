// Package main is the entry point for the checklist CLI.
package main

import "checklist.dev/pkg/checklist/cmd"

func main() {
	cmd.Execute()
}
