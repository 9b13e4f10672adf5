package main

import (
	"os"

	"github.com/bnema/petit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
