package main

import (
	"os"

	"github.com/bnema/pft-wallet-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
