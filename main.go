package main

import (
	"os"

	"github.com/cylind/subcue/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
