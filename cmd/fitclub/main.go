package main

import (
	"fmt"
	"os"
)

const (
	Version = "0.1.0"
	appName = "fitclub"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
