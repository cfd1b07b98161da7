package main

import (
	"os"

	"github.com/abhisek/dictaz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
