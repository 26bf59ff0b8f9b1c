package main

import (
	"fmt"
	"os"

	"github.com/ferrite-lang/ferritec/cmd/ferritec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
