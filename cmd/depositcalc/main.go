package main

import (
	"os"

	"github.com/cloud-ru/deposit-calculator-go/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
