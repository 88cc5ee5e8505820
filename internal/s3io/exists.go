package s3io

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func (cl *client) Head(ctx context.Context, key string) (*ObjectInfo, error) {

	hoo, err := cl.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: cl.bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, &ErrNoSuchObject{
				key: key,
			}
		}
		return nil, err
	}

	return &ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(hoo.ContentLength),
		LastModified: aws.ToTime(hoo.LastModified),
		StorageClass: string(hoo.StorageClass),
	}, nil
}

func (cl *client) BucketExists(ctx context.Context) (bool, error) {

	_, err := cl.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: cl.bucket,
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}

	return false, err
}

func (cl *client) CreateBucket(ctx context.Context) error {

	input := s3.CreateBucketInput{
		Bucket: cl.bucket,
	}

	// us-east-1 is the default location and rejects an explicit constraint
	if cl.region != "" && cl.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(cl.region),
		}
	}

	_, err := cl.client.CreateBucket(ctx, &input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return &ErrNoSuchBucket{
			bucket: cl.Bucket(),
			cause:  err,
		}
	}

	return nil
}

// isNotFound reports whether the store answered that the bucket or key does
// not exist. HEAD requests carry no body so only the status code is reliable.
func isNotFound(err error) bool {
	var responseError *awshttp.ResponseError
	if errors.As(err, &responseError) && responseError.ResponseError.HTTPStatusCode() == http.StatusNotFound {
		return true
	}

	var apiError smithy.APIError
	if errors.As(err, &apiError) {
		switch apiError.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}

	return false
}
