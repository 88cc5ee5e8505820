package ops

import (
	"context"
	"os"

	"github.com/studio1767/s3tree/internal/s3io"
)

// This operator uploads files to the store. Only entries still pending when
// they arrive are uploaded: the change detector ahead of it has already
// marked unchanged files. Each upload replaces whatever object is at the key.
func NewUploader(ctx context.Context, in <-chan *EntryInfo, client s3io.Client, workers int) <-chan *EntryInfo {
	ul := uploader{
		client: client,
	}
	return parallel(ctx, in, workers, ul.process)
}

type uploader struct {
	client s3io.Client
}

func (ul *uploader) process(ctx context.Context, info *EntryInfo) {
	// check the status first
	if !info.Pending() {
		return
	}

	// open the file for reading
	file, err := os.Open(info.LocalPath)
	if err != nil {
		info.Fail(&TransferError{
			Op:  "open",
			Key: info.Key,
			Err: err,
		})
		return
	}
	defer file.Close()

	// try and upload
	nbytes, err := ul.client.Upload(ctx, info.Key, file)
	if err != nil {
		info.Fail(&TransferError{
			Op:  "upload",
			Key: info.Key,
			Err: err,
		})
		return
	}

	info.Action = Uploaded
	info.TransferredSize = nbytes
}
