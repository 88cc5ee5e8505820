package s3io

import (
	"io"
	"sync/atomic"
)

// ReadCounter passes reads through to the wrapped reader and keeps a tally.
// The totals may be read from another goroutine while reads are in flight,
// which is how multipart uploads report progress.
type ReadCounter interface {
	Read(p []byte) (int, error)
	Close() error

	TotalReads() int
	TotalBytes() int64
}

func NewReadCounter(in io.Reader) ReadCounter {
	rc := readCounter{
		in: in,
	}
	return &rc
}

type readCounter struct {
	in    io.Reader
	reads atomic.Int64
	bytes atomic.Int64
}

func (rc *readCounter) Read(p []byte) (int, error) {
	size, err := rc.in.Read(p)

	rc.reads.Add(1)
	rc.bytes.Add(int64(size))

	return size, err
}

func (rc *readCounter) Close() error {
	rc.in = nil
	return nil
}

func (rc *readCounter) TotalReads() int {
	return int(rc.reads.Load())
}

func (rc *readCounter) TotalBytes() int64 {
	return rc.bytes.Load()
}
