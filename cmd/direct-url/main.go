package main

import (
	"os"

	"github.com/bianoble/direct-url/cmd/direct-url/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
