// Package main is the operator CLI of the business site builder.
package main

import (
	"os"

	"github.com/pkordes/bizsite/cmd/bizsitectl/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
