package main

import (
	"context"
	"fmt"
	"os"

	"sigd/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "sigd:", err)
		os.Exit(1)
	}
}
