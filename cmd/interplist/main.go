package main

import (
	"fmt"
	"os"

	"github.com/timzifer/interplist/internal/cmd"
)

func main() {
	if err := cmd.NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "interplist:", err)
		os.Exit(1)
	}
}
