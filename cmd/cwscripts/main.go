package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		handleError(err)
	}
}

func run() error {
	rootCmd, c := newRootCmd()
	return execute(context.Background(), rootCmd, c)
}

// execute runs rootCmd and closes the App it built, successfully or not.
// Ordinary command errors are printed to the command's error stream here;
// errors carrying their own exit code are left to handleError.
func execute(ctx context.Context, rootCmd *cobra.Command, c *cli) (err error) {
	defer func() {
		if closeErr := c.close(); err == nil {
			err = closeErr
		}
	}()

	err = rootCmd.ExecuteContext(ctx)
	if err != nil && getExitCode(err) <= 1 {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}

func handleError(err error) {
	exitCode := getExitCode(err)
	if exitCode > 1 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode)
}

func getExitCode(err error) int {
	switch e := err.(type) {
	case exitError:
		return e.code
	default:
		return 1
	}
}

// exitError carries a specific process exit code.
type exitError struct {
	error
	code int
}
