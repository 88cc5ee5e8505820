package s3io

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client is the view of a single bucket used by the backup and restore
// traversals. All keys are relative to that bucket.
type Client interface {
	Bucket() string

	BucketExists(ctx context.Context) (bool, error)
	CreateBucket(ctx context.Context) error

	Head(ctx context.Context, key string) (*ObjectInfo, error)
	List(ctx context.Context, prefix string, fn func(*ObjectInfo) error) error

	Upload(ctx context.Context, key string, source io.Reader) (int64, error)
	Download(ctx context.Context, key string, sink io.WriterAt) (int64, error)
}

// ObjectInfo is the metadata of one stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	StorageClass string
}

// Options selects the credentials and endpoint for NewClient. Empty
// fields fall back to the shared AWS configuration.
type Options struct {
	Profile   string
	Region    string
	Endpoint  string
	PathStyle bool
	AccessKey string
	SecretKey string
}

type client struct {
	client *s3.Client
	bucket *string
	region string
}

func NewClient(ctx context.Context, bucket string, opts Options) (Client, error) {

	// load the profile
	var loaders []func(*config.LoadOptions) error
	if opts.Profile != "" {
		loaders = append(loaders, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loaders = append(loaders, config.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	// create the client, pointing at a compatible store if asked to
	s3client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	})

	cl := client{
		client: s3client,
		bucket: aws.String(bucket),
		region: cfg.Region,
	}

	return &cl, nil
}

func (cl *client) Bucket() string {
	return aws.ToString(cl.bucket)
}
