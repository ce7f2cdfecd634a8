// main package for the rowmut command-line tool
// Package main is the entry point for the rowmut CLI.
package main

import "github.com/rowmut/rowmut/cmd"

func main() {
	cmd.Execute()
}
