package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/scholar-scraper/internal/scholar"
)

// promptHandler returns an intervention handler that blocks until the
// operator completes the challenge in the browser window and presses ENTER.
// The prompt writes to stderr and ignores --quiet.
func promptHandler() scholar.InterventionFunc {
	return func(ctx context.Context, challenge *scholar.InterventionRequired) error {
		fmt.Fprintf(os.Stderr, "\n%s\n", challenge.Reason)
		fmt.Fprintln(os.Stderr, "Complete the verification in the browser window, then press ENTER to resume.")

		confirmed := make(chan error, 1)
		go func() {
			_, err := bufio.NewReader(os.Stdin).ReadString('\n')
			confirmed <- err
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-confirmed:
			if err != nil {
				return fmt.Errorf("reading confirmation: %w", err)
			}
			return nil
		}
	}
}

// adviseHeadless decorates an unresolved challenge from a headless run with
// the flag that would have made it solvable.
func adviseHeadless(err error, headless bool) error {
	if headless && scholar.IsIntervention(err) {
		return fmt.Errorf("%w (re-run with --headless=false to complete the verification by hand)", err)
	}
	return err
}
