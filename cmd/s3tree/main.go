package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/studio1767/s3tree/internal/config"
	"github.com/studio1767/s3tree/internal/keymap"
	"github.com/studio1767/s3tree/internal/s3io"
)

const (
	exitOK = iota
	exitFailure
	exitBadArgument
	exitBucket
	exitPartial
	exitNothingFound
)

var errNothingFound = errors.New("nothing found")

type errPartial struct {
	failed int
	total  int
	err    error
}

func (e *errPartial) Error() string {
	return fmt.Sprintf("%d of %d items failed", e.failed, e.total)
}

func (e *errPartial) Unwrap() error {
	return e.err
}

// the store client; replaced in tests
var newClient = s3io.NewClient

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "s3tree",
		Short:         "Mirror a directory tree to and from an S3 bucket",
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return keymap.NewErrBadArgument("unknown command %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().SortFlags = false
	root.PersistentFlags().StringP("config", "c", "", "settings file (default ~/.s3tree/config.yml)")
	root.PersistentFlags().StringP("profile", "p", "", "aws profile for credentials and configuration")
	root.PersistentFlags().IntP("workers", "j", 0, "concurrent transfers per stage")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
	root.PersistentFlags().String("report", "", "write a line per item to this file")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return keymap.NewErrBadArgument("%s", err)
	})

	root.AddCommand(newBackupCmd())
	root.AddCommand(newRestoreCmd())

	return root
}

func exitCode(err error) int {
	var badarg *keymap.ErrBadArgument
	var invalid *config.ErrInvalid
	var nosuchbucket *s3io.ErrNoSuchBucket
	var partial *errPartial

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNothingFound):
		return exitNothingFound
	case errors.As(err, &badarg), errors.As(err, &invalid):
		return exitBadArgument
	case errors.As(err, &nosuchbucket):
		return exitBucket
	case errors.As(err, &partial):
		return exitPartial
	}
	return exitFailure
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(exitCode(err))
}
