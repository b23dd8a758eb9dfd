// Package main is the entry point for the mfe host.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/opmodel/mfe/internal/cmd"
	oerrors "github.com/opmodel/mfe/internal/errors"
)

func main() {
	// A missing .env is fine; MFE_* vars may come from the environment.
	_ = godotenv.Load()

	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) {
			// Only print if the command layer hasn't already printed it
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		// Flag and argument errors from cobra land here.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}
