package s3io

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var downloadable = map[string]bool{
	// objects listed without a class are standard
	"": true,

	string(types.StorageClassStandard):           true,
	string(types.StorageClassReducedRedundancy):  true,
	string(types.StorageClassStandardIa):         true,
	string(types.StorageClassOnezoneIa):          true,
	string(types.StorageClassIntelligentTiering): true,
	string(types.StorageClassGlacierIr):          true,
	string(types.StorageClassExpressOnezone):     true,
}

// Downloadable reports whether objects of the given storage class can be
// fetched without a restore request.
func Downloadable(storageClass string) bool {
	return downloadable[storageClass]
}

// Download writes the object at key into sink. The sink is written at
// offsets so the parallel downloader can fetch ranges concurrently. Callers
// check Downloadable against the listed storage class first; an archived
// object that slips through is reported as ErrNotDownloadable.
func (cl *client) Download(ctx context.Context, key string, sink io.WriterAt) (int64, error) {

	downloader := manager.NewDownloader(cl.client)

	nbytes, err := downloader.Download(ctx, sink, &s3.GetObjectInput{
		Bucket: cl.bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, &ErrNoSuchObject{
				key: key,
			}
		}
		if isArchived(err) {
			return 0, &ErrNotDownloadable{
				key: key,
			}
		}
		return 0, err
	}

	return nbytes, nil
}

func isArchived(err error) bool {
	var apiError smithy.APIError
	return errors.As(err, &apiError) && apiError.ErrorCode() == "InvalidObjectState"
}
