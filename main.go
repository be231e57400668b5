// Package main provides the crtbox CLI application.
// crtbox builds crates-per-box sales reports from the dispatch
// database.
package main

import "github.com/dispatchlab/crtbox/cmd"

func main() {
	cmd.Execute()
}
