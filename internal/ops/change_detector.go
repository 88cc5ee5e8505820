package ops

import (
	"context"
	"errors"
	"time"

	"github.com/studio1767/s3tree/internal/s3io"
)

// NeedsUpload decides whether a local file has to be sent to the store.
// A nil remoteModTime means there is no object yet. The store stamps objects
// with the time they were written, so an object at least as new as the local
// file is taken to hold its current contents. Clock skew between the host and
// the store can cause false skips or redundant uploads.
func NeedsUpload(localModTime time.Time, remoteModTime *time.Time) bool {
	if remoteModTime == nil {
		return true
	}
	return remoteModTime.Before(localModTime)
}

// NewChangeDetector looks up the stored object for each pending entry and
// marks the entry SkippedUpToDate when no upload is needed. Lookups other
// than a clean "not found" fail the entry rather than forcing an upload.
func NewChangeDetector(ctx context.Context, in <-chan *EntryInfo, client s3io.Client, workers int) <-chan *EntryInfo {
	cd := changeDetector{
		client: client,
	}
	return parallel(ctx, in, workers, cd.process)
}

type changeDetector struct {
	client s3io.Client
}

func (cd *changeDetector) process(ctx context.Context, info *EntryInfo) {
	if !info.Pending() {
		return
	}

	remote, err := cd.client.Head(ctx, info.Key)
	if err != nil {
		var nosuchobject *s3io.ErrNoSuchObject
		if !errors.As(err, &nosuchobject) {
			info.Fail(&TransferError{
				Op:  "head",
				Key: info.Key,
				Err: err,
			})
			return
		}
	} else {
		info.RemoteModTime = &remote.LastModified
	}

	if !NeedsUpload(info.ModTime, info.RemoteModTime) {
		info.Action = SkippedUpToDate
	}
}
