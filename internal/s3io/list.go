package s3io

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// List calls fn for every object whose key starts with prefix, in the
// order the store returns them. An error from fn stops the listing and is
// returned as is.
func (cl *client) List(ctx context.Context, prefix string, fn func(*ObjectInfo) error) error {

	loi := s3.ListObjectsV2Input{
		Bucket: cl.bucket,
		Prefix: aws.String(prefix),
	}

	paginator := s3.NewListObjectsV2Paginator(cl.client, &loi)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if isNotFound(err) {
				return &ErrNoSuchBucket{
					bucket: cl.Bucket(),
				}
			}
			return err
		}

		for _, object := range page.Contents {
			info := ObjectInfo{
				Key:          aws.ToString(object.Key),
				Size:         aws.ToInt64(object.Size),
				LastModified: aws.ToTime(object.LastModified),
				StorageClass: string(object.StorageClass),
			}
			if err := fn(&info); err != nil {
				return err
			}
		}
	}

	return nil
}
