package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// IsTTY reports whether stderr is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// RunWithSpinner executes action while showing a spinner with the given title.
// Without a TTY the action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action(ctx)
	}()

	var actionErr error
	spinnerErr := spinner.New().
		Title(title).
		Action(func() {
			actionErr = <-errCh
		}).
		Run()
	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}

	return actionErr
}
