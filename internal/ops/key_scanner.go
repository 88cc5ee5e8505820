package ops

import (
	"context"
	"errors"

	"github.com/studio1767/s3tree/internal/keymap"
	"github.com/studio1767/s3tree/internal/s3io"
)

var errStopped = errors.New("scan stopped")

// KeyScanner lists the objects under a prefix and emits one entry per key
// with its destination below root filled in. Keys that can't be mapped are
// emitted as failed entries.
type KeyScanner struct {
	ctx    context.Context
	out    chan *EntryInfo
	client s3io.Client
	root   string
	prefix string
	err    error
}

func NewKeyScanner(ctx context.Context, client s3io.Client, root, prefix string) *KeyScanner {
	ks := KeyScanner{
		ctx:    ctx,
		out:    make(chan *EntryInfo, 10),
		client: client,
		root:   root,
		prefix: prefix,
	}
	go ks.run()

	return &ks
}

// Entries is closed once the listing completes or fails.
func (ks *KeyScanner) Entries() <-chan *EntryInfo {
	return ks.out
}

// Err returns the listing failure, if any. Only valid after Entries has
// been drained.
func (ks *KeyScanner) Err() error {
	return ks.err
}

func (ks *KeyScanner) run() {
	defer close(ks.out)

	err := ks.client.List(ks.ctx, ks.prefix, func(object *s3io.ObjectInfo) error {
		if !send(ks.ctx, ks.out, ks.entry(object)) {
			return errStopped
		}
		return nil
	})

	if errors.Is(err, errStopped) {
		err = ks.ctx.Err()
	}
	ks.err = err
}

func (ks *KeyScanner) entry(object *s3io.ObjectInfo) *EntryInfo {
	modtime := object.LastModified

	info := &EntryInfo{
		Key:           object.Key,
		RawSize:       object.Size,
		ModTime:       modtime,
		RemoteModTime: &modtime,
		StorageClass:  object.StorageClass,
	}

	rel, err := keymap.RelPath(ks.prefix, object.Key)
	if err != nil {
		info.RelPath = object.Key
		info.Fail(err)
		return info
	}
	info.RelPath = rel

	path, err := keymap.ToLocalPath(ks.root, ks.prefix, object.Key)
	if err != nil {
		info.Fail(err)
		return info
	}
	info.LocalPath = path

	return info
}
