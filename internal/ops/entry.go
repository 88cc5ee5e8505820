package ops

import (
	"os"
	"time"
)

// OpAction represents the outcome of processing one file or object. Every
// entry leaves the pipeline with exactly one of these set.
type OpAction int

const (
	NoAction OpAction = iota
	Uploaded
	Downloaded
	SkippedUpToDate
	SkippedDirectoryMarker
	Failed
)

func (a OpAction) String() string {
	switch a {
	case NoAction:
		return "none"
	case Uploaded:
		return "uploaded"
	case Downloaded:
		return "downloaded"
	case SkippedUpToDate:
		return "uptodate"
	case SkippedDirectoryMarker:
		return "dirmarker"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// EntryInfo is the state of one item passed between operators. For a backup
// it starts life as a local file, for a restore as a listed object; the
// operators fill in the other side and the action taken.
type EntryInfo struct {
	RelPath   string
	LocalPath string
	Key       string

	RawSize       int64
	ModTime       time.Time
	RemoteModTime *time.Time
	Mode          os.FileMode
	StorageClass  string

	Action          OpAction
	TransferredSize int64
	Err             error
}

// Fail marks the entry as failed. Later operators pass failed entries on
// untouched.
func (info *EntryInfo) Fail(err error) {
	info.Action = Failed
	info.Err = err
}

// Pending reports whether no operator has decided the entry's outcome yet.
func (info *EntryInfo) Pending() bool {
	return info.Action == NoAction
}
