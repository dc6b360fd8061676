package main

import (
	"os"

	"github.com/vimdojo/vimdojo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
