package main

import (
	"os"

	"github.com/AmalShalabi/psycho-arabic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
