package s3io

import (
	"fmt"
)

type ErrNoSuchBucket struct {
	bucket string
	cause  error
}

func (e *ErrNoSuchBucket) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("bucket not available: %s: %s", e.bucket, e.cause)
	}
	return fmt.Sprintf("no such bucket: %s", e.bucket)
}

func (e *ErrNoSuchBucket) Unwrap() error {
	return e.cause
}

// NewErrNoSuchBucket is used by Client implementations outside this package.
func NewErrNoSuchBucket(bucket string, cause error) *ErrNoSuchBucket {
	return &ErrNoSuchBucket{
		bucket: bucket,
		cause:  cause,
	}
}

type ErrNoSuchObject struct {
	key string
}

func (e *ErrNoSuchObject) Error() string {
	return fmt.Sprintf("no such object in bucket: %s", e.key)
}

func NewErrNoSuchObject(key string) *ErrNoSuchObject {
	return &ErrNoSuchObject{
		key: key,
	}
}

type ErrNotDownloadable struct {
	key          string
	storageClass string
}

func (e *ErrNotDownloadable) Error() string {
	if e.storageClass == "" {
		return fmt.Sprintf("object is not downloadable: %s: archived", e.key)
	}
	return fmt.Sprintf("object is not downloadable: %s: storage class is %s", e.key, e.storageClass)
}

func NewErrNotDownloadable(key, storageClass string) *ErrNotDownloadable {
	return &ErrNotDownloadable{
		key:          key,
		storageClass: storageClass,
	}
}
