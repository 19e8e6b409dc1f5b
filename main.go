package main

import (
	"os"

	"github.com/miickii/HSKTrainer-sub000/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
