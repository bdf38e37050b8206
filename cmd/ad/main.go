package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ad-tool/ad/internal/cli"
)

func main() {
	err := cli.Execute()
	if err == nil {
		os.Exit(cli.ExitSuccess)
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, "ad:", exitErr.Err)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, "ad:", err)
	os.Exit(cli.ExitSystem)
}
