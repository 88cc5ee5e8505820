package ops

import (
	"fmt"
)

// TransferError is a failed store operation for a single item.
type TransferError struct {
	Op  string
	Key string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Key, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

type ErrMkdir struct {
	dir string
	err error
}

func (e *ErrMkdir) Error() string {
	return fmt.Sprintf("failed to create directory %s: %s", e.dir, e.err)
}

func (e *ErrMkdir) Unwrap() error {
	return e.err
}

type ErrScan struct {
	dir string
	err error
}

func (e *ErrScan) Error() string {
	return fmt.Sprintf("failed to read directory %s: %s", e.dir, e.err)
}

func (e *ErrScan) Unwrap() error {
	return e.err
}
