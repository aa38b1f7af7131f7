/*
Package cmd provides CLI functionality.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

// PrintError writes err to stderr, prefixed with a red "Error:".
func PrintError(err error) {
	FprintError(os.Stderr, err)
}

func FprintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", color.HiRedString("Error:"), err.Error())
}

// WithInterrupt returns a context that is canceled upon SIGINT or SIGTERM.
func WithInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
}
