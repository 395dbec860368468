package main

import (
	"fmt"
	"os"

	"github.com/axelarnetwork/axelar-deployments/cmd/deploy"
)

func main() {
	if err := deploy.BuildRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
