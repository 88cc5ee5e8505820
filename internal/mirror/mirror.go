// Package mirror runs backups of a local directory tree into a bucket and
// restores of a key prefix back into a directory tree.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/studio1767/s3tree/internal/keymap"
	"github.com/studio1767/s3tree/internal/ops"
	"github.com/studio1767/s3tree/internal/s3io"
)

const DefaultWorkers = 4

type Options struct {
	// Workers bounds the concurrent store requests per stage.
	Workers int

	// CreateBucket creates a missing bucket before a backup.
	CreateBucket bool

	Scan              ops.ScanOptions
	IncludeExtensions []string
	ExcludeExtensions []string

	// Report, if set, receives one line per item.
	Report io.Writer

	Log logrus.FieldLogger
}

func (opts Options) withDefaults() Options {
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return opts
}

// Backup uploads every regular file below root whose object under prefix is
// missing or older than the file. Individual failures are recorded in the
// result and don't stop the backup; the returned error is reserved for
// problems that prevent it from running at all, or cancellation.
func Backup(ctx context.Context, client s3io.Client, root, prefix string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Log.WithFields(logrus.Fields{
		"op":     "backup",
		"bucket": client.Bucket(),
		"prefix": prefix,
	})
	result := &Result{}

	// a missing root has nothing to back up
	st, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("root", root).Warn("local directory does not exist")
			return result, nil
		}
		return nil, err
	}
	if !st.IsDir() {
		return nil, keymap.NewErrBadArgument("not a directory: %s", root)
	}

	err = ensureBucket(ctx, client, opts.CreateBucket, log)
	if err != nil {
		return nil, err
	}

	// context to stop the chain early
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// build the file processing chain
	ch := ops.NewFsScanner(cctx, root, prefix, opts.Scan)

	if len(opts.IncludeExtensions) > 0 {
		ch = ops.NewFileExtensionFilter(cctx, ch, opts.IncludeExtensions, true)
	}
	if len(opts.ExcludeExtensions) > 0 {
		ch = ops.NewFileExtensionFilter(cctx, ch, opts.ExcludeExtensions, false)
	}

	ch = ops.NewChangeDetector(cctx, ch, client, opts.Workers)
	ch = ops.NewUploader(cctx, ch, client, opts.Workers)

	var report *ops.ReportWriter
	if opts.Report != nil {
		report = ops.NewReportWriter(cctx, ch, opts.Report)
		ch = report.Entries()
	}

	// run the chain
	result.collect(ch, log)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if report != nil && report.Err() != nil {
		log.WithError(report.Err()).Warn("report is incomplete")
	}

	return result, nil
}

// Restore downloads every object under prefix into root, recreating the
// directory structure encoded in the keys. Existing files are overwritten.
// As with Backup, item failures are recorded in the result.
func Restore(ctx context.Context, client s3io.Client, root, prefix string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Log.WithFields(logrus.Fields{
		"op":     "restore",
		"bucket": client.Bucket(),
		"prefix": prefix,
	})
	result := &Result{}

	// the root is created on demand but can't be something else
	st, err := os.Stat(root)
	if err == nil && !st.IsDir() {
		return nil, keymap.NewErrBadArgument("not a directory: %s", root)
	}

	// nothing to reconcile without the bucket
	exists, err := client.BucketExists(ctx)
	if err != nil {
		return nil, s3io.NewErrNoSuchBucket(client.Bucket(), err)
	}
	if !exists {
		return nil, s3io.NewErrNoSuchBucket(client.Bucket(), nil)
	}

	// context to stop the chain early
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// build the object processing chain
	scanner := ops.NewKeyScanner(cctx, client, root, prefix)
	ch := ops.NewDownloader(cctx, scanner.Entries(), client, ops.NewDirMaker(), opts.Workers)

	var report *ops.ReportWriter
	if opts.Report != nil {
		report = ops.NewReportWriter(cctx, ch, opts.Report)
		ch = report.Entries()
	}

	// run the chain
	result.collect(ch, log)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("listing %s failed: %w", prefix, err)
	}
	if report != nil && report.Err() != nil {
		log.WithError(report.Err()).Warn("report is incomplete")
	}

	return result, nil
}

func ensureBucket(ctx context.Context, client s3io.Client, create bool, log logrus.FieldLogger) error {
	exists, err := client.BucketExists(ctx)
	if err != nil {
		return s3io.NewErrNoSuchBucket(client.Bucket(), err)
	}
	if exists {
		return nil
	}
	if !create {
		return s3io.NewErrNoSuchBucket(client.Bucket(), nil)
	}

	log.Info("creating bucket")
	return client.CreateBucket(ctx)
}
