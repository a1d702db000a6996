package main

import (
	"os"

	"github.com/ngts-qa/qaview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
