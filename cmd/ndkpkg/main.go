// Package main is the entry point for the ndkpkg CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/ndkpkg/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
