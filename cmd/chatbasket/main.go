package main

import (
	"fmt"
	"os"

	"github.com/soyeahso/chatbasket/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chatbasket:", err)
		os.Exit(1)
	}
}
