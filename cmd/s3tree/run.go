package main

import (
	"context"
	"fmt"
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/studio1767/s3tree/internal/config"
	"github.com/studio1767/s3tree/internal/keymap"
	"github.com/studio1767/s3tree/internal/mirror"
	"github.com/studio1767/s3tree/internal/s3io"
)

type traversal func(ctx context.Context, client s3io.Client, root, prefix string, opts mirror.Options) (*mirror.Result, error)

// session is everything a subcommand needs once the command line and the
// settings file have been combined.
type session struct {
	cfg    *config.Config
	log    *logrus.Logger
	client s3io.Client
	out    io.Writer
	report string
}

func twoArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return keymap.NewErrBadArgument("%s takes exactly 2 arguments, got %d", cmd.Name(), len(args))
	}
	return nil
}

func newSession(cmd *cobra.Command, remote keymap.Remote) (*session, error) {
	flags := cmd.Flags()

	cfgpath, _ := flags.GetString("config")
	cfg, err := config.Load(cfgpath)
	if err != nil {
		return nil, err
	}

	// the command line wins over the file
	if flags.Changed("profile") {
		cfg.Profile, _ = flags.GetString("profile")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flag := flags.Lookup("create-bucket"); flag != nil && flag.Changed {
		cfg.CreateBucket, _ = flags.GetBool("create-bucket")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// logging goes to stderr, the summary to stdout
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if verbose, _ := flags.GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if cfg.Path != "" {
		log.WithField("config", cfg.Path).Debug("loaded settings")
	}

	client, err := newClient(cmd.Context(), remote.Bucket, cfg.ClientOptions())
	if err != nil {
		return nil, err
	}

	report, _ := flags.GetString("report")

	return &session{
		cfg:    cfg,
		log:    log,
		client: client,
		out:    cmd.OutOrStdout(),
		report: report,
	}, nil
}

func (s *session) run(ctx context.Context, title string, fn traversal, root, prefix string) error {
	timeout, err := s.cfg.TimeoutDuration()
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	opts := s.cfg.MirrorOptions(s.log)

	if s.report != "" {
		rfile, err := os.Create(s.report)
		if err != nil {
			return err
		}
		defer rfile.Close()
		opts.Report = rfile
	}

	result, err := fn(ctx, s.client, root, prefix, opts)
	if err != nil {
		return err
	}

	s.summary(title, result)

	if !result.Found() {
		return errNothingFound
	}
	if result.Failed > 0 {
		return &errPartial{
			failed: result.Failed,
			total:  result.Total,
			err:    result.Err(),
		}
	}

	return nil
}

func (s *session) summary(title string, result *mirror.Result) {
	out := s.out

	for _, failure := range result.Failures {
		fmt.Fprintf(out, "-   failed: %s\n", failure)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s Summary\n", title)
	fmt.Fprintf(out, "        total: %d\n", result.Total)
	if title == "Backup" {
		fmt.Fprintf(out, "   up to date: %d\n", result.UpToDate)
		fmt.Fprintf(out, "     uploaded: %d (%s bytes)\n", result.Uploaded, humanize.Comma(result.Bytes))
	} else {
		fmt.Fprintf(out, "  directories: %d\n", result.DirMarkers)
		fmt.Fprintf(out, "   downloaded: %d (%s bytes)\n", result.Downloaded, humanize.Comma(result.Bytes))
	}
	fmt.Fprintf(out, "       failed: %d\n", result.Failed)
	fmt.Fprintf(out, "  transferred: %s\n", humanize.Bytes(uint64(result.Bytes)))
	fmt.Fprintln(out)
}
