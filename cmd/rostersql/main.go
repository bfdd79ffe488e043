// Command rostersql converts a plain-text roster export into a SQL batch that
// creates the class and inserts its students.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/yigit/rostersql/internal/pkg/apperrors"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		code := apperrors.ExitCode(err)
		fmt.Fprintln(os.Stderr, formatError(err))
		stop()
		os.Exit(code)
	}
}

// formatError renders err for stderr. Errors carrying a code are prefixed
// with it and followed by their details as key=value pairs.
func formatError(err error) string {
	var ce *apperrors.CustomError
	if !errors.As(err, &ce) || ce.Code == "" {
		return fmt.Sprintf("Error: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error [%s]: %v", ce.Code, err)

	keys := make([]string, 0, len(ce.Details))
	for k := range ce.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, ce.Details[k])
	}
	return b.String()
}
