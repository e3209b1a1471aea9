// Package main is the TripWise command-line client.
package main

import (
	"fmt"
	"os"
)

var (
	version   string
	buildDate string
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
