package s3io

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Upload stores the contents of source at key, replacing any existing
// object. It returns the number of bytes sent.
func (cl *client) Upload(ctx context.Context, key string, source io.Reader) (int64, error) {

	// count how many bytes actually get uploaded
	counter := NewReadCounter(source)
	defer counter.Close()

	// the uploader switches to multipart for large files and doesn't need
	// to know the content length in advance
	uploader := manager.NewUploader(cl.client)

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: cl.bucket,
		Key:    aws.String(key),
		Body:   counter,
	})

	return counter.TotalBytes(), err
}
