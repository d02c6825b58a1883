package main

import (
	"fmt"
	"os"
	_ "time/tzdata" // Europe/Athens on hosts without a zoneinfo database
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
