package main

import (
	"os"

	"github.com/tkingovr/chatguard/cmd/chatguard/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
