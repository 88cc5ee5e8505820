package ops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/studio1767/s3tree/internal/keymap"
	"github.com/studio1767/s3tree/internal/s3io"
)

const (
	filePerm = 0644

	// fixed so the temporary name stays short whatever the destination is
	tmpPattern = ".s3tree-*"
)

// This operator restores objects into the local tree. The parent directory
// chain is created first; directory markers stop there. Objects are written
// to a temporary file beside the destination and renamed over it once
// complete, so a failed download never leaves a truncated file behind.
func NewDownloader(ctx context.Context, in <-chan *EntryInfo, client s3io.Client, dirs *DirMaker, workers int) <-chan *EntryInfo {
	dl := downloader{
		client: client,
		dirs:   dirs,
	}
	return parallel(ctx, in, workers, dl.process)
}

type downloader struct {
	client s3io.Client
	dirs   *DirMaker
}

func (dl *downloader) process(ctx context.Context, info *EntryInfo) {
	// check the status first
	if !info.Pending() {
		return
	}

	if keymap.IsDirMarker(info.Key) {
		if err := dl.dirs.Ensure(info.LocalPath); err != nil {
			info.Fail(err)
			return
		}
		info.Action = SkippedDirectoryMarker
		return
	}

	// create the directories to the file
	fdir := filepath.Dir(info.LocalPath)
	if err := dl.dirs.Ensure(fdir); err != nil {
		info.Fail(err)
		return
	}

	// the listing already told us whether the object can be fetched
	if !s3io.Downloadable(info.StorageClass) {
		info.Fail(&TransferError{
			Op:  "download",
			Key: info.Key,
			Err: s3io.NewErrNotDownloadable(info.Key, info.StorageClass),
		})
		return
	}

	nbytes, err := dl.download(ctx, info, fdir)
	if err != nil {
		info.Fail(err)
		return
	}

	info.Action = Downloaded
	info.TransferredSize = nbytes
}

func (dl *downloader) download(ctx context.Context, info *EntryInfo, fdir string) (int64, error) {
	fail := func(op string, err error) error {
		return &TransferError{
			Op:  op,
			Key: info.Key,
			Err: err,
		}
	}

	// create the file
	sink, err := os.CreateTemp(fdir, tmpPattern)
	if err != nil {
		return 0, fail("create", err)
	}
	tmpname := sink.Name()

	// download to the file
	nbytes, err := dl.client.Download(ctx, info.Key, sink)
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpname)
		return 0, fail("download", err)
	}

	// set the mode and keep the object's timestamp so that a later backup
	// sees the file as up to date
	err = os.Chmod(tmpname, filePerm)
	if err == nil && info.RemoteModTime != nil {
		err = os.Chtimes(tmpname, *info.RemoteModTime, *info.RemoteModTime)
	}
	if err != nil {
		os.Remove(tmpname)
		return 0, fail("finish", err)
	}

	// and move it into place
	if err := os.Rename(tmpname, info.LocalPath); err != nil {
		os.Remove(tmpname)
		return 0, fail("rename", err)
	}

	return nbytes, nil
}
