// Package main is the entry point for the gencontrol CLI.
package main

import (
	"os"

	"github.com/kernelmeta/gencontrol/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stderr))
}
