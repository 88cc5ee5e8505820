package mirror

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/studio1767/s3tree/internal/ops"
)

// ItemError is the failure of a single file or object. The traversal that
// produced it carried on with the remaining items.
type ItemError struct {
	Path string
	Key  string
	Err  error
}

func (e *ItemError) Error() string {
	name := e.Key
	if name == "" {
		name = e.Path
	}
	return fmt.Sprintf("%s: %s", name, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// Result aggregates the outcome of every item seen by one backup or restore.
type Result struct {
	Total      int
	Uploaded   int
	Downloaded int
	UpToDate   int
	DirMarkers int
	Failed     int
	Bytes      int64

	Failures []*ItemError
}

// Found reports whether the traversal saw anything at all. A backup of an
// empty or missing directory, or a restore of an empty prefix, is not found.
func (r *Result) Found() bool {
	return r.Total > 0
}

// Succeeded is the number of items that did not fail, whether or not they
// needed a transfer.
func (r *Result) Succeeded() int {
	return r.Total - r.Failed
}

// Err joins all item failures, or returns nil if there were none.
func (r *Result) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, failure := range r.Failures {
		errs = append(errs, failure)
	}
	return errors.Join(errs...)
}

func (r *Result) add(info *ops.EntryInfo, log logrus.FieldLogger) {
	r.Total++

	ilog := log.WithFields(logrus.Fields{
		"key":  info.Key,
		"path": info.RelPath,
	})

	switch info.Action {
	case ops.Uploaded:
		r.Uploaded++
		r.Bytes += info.TransferredSize
		ilog.WithField("bytes", info.TransferredSize).Info("uploaded")
	case ops.Downloaded:
		r.Downloaded++
		r.Bytes += info.TransferredSize
		ilog.WithField("bytes", info.TransferredSize).Info("downloaded")
	case ops.SkippedUpToDate:
		r.UpToDate++
		ilog.Debug("up to date")
	case ops.SkippedDirectoryMarker:
		r.DirMarkers++
		ilog.Debug("directory marker")
	case ops.Failed:
		r.fail(info)
		ilog.WithError(info.Err).Warn("failed")
	default:
		// every operator chain ends in a decision; anything else is a bug
		info.Err = fmt.Errorf("no action taken for %s", info.RelPath)
		r.fail(info)
		ilog.WithError(info.Err).Error("unprocessed")
	}
}

func (r *Result) fail(info *ops.EntryInfo) {
	r.Failed++
	r.Failures = append(r.Failures, &ItemError{
		Path: info.RelPath,
		Key:  info.Key,
		Err:  info.Err,
	})
}

func (r *Result) collect(ch <-chan *ops.EntryInfo, log logrus.FieldLogger) {
	for info := range ch {
		r.add(info, log)
	}

	// completion order depends on the workers; report failures by key
	sort.Slice(r.Failures, func(i, j int) bool {
		if r.Failures[i].Key != r.Failures[j].Key {
			return r.Failures[i].Key < r.Failures[j].Key
		}
		return r.Failures[i].Path < r.Failures[j].Path
	})
}
