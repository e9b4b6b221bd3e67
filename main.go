package main

import (
	"os"

	"github.com/mgallet/horaire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
