package main

import (
	"os"

	"cleanhome/cmd/cleanhome/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
