package s3io_test

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/stretchr/testify/require"
	"testing"

	"github.com/studio1767/s3tree/internal/s3io"
)

func liveClient(t *testing.T) s3io.Client {
	// basic setup to get the client
	profile := os.Getenv("S3TREE_TEST_PROFILE")
	bucket := os.Getenv("S3TREE_TEST_BUCKET")
	if profile == "" || bucket == "" {
		t.Skip("S3TREE_TEST_PROFILE and S3TREE_TEST_BUCKET not set")
	}

	client, err := s3io.NewClient(context.Background(), bucket, s3io.Options{Profile: profile})
	require.NoError(t, err)

	return client
}

func TestExists(t *testing.T) {
	client := liveClient(t)
	ctx := context.Background()

	exists, err := client.BucketExists(ctx)
	require.NoError(t, err)
	require.True(t, exists)

	// generate a key to test with
	now := time.Now()
	key := fmt.Sprintf("test-%s", now.Format("20060102150405"))

	_, err = client.Head(ctx, key)
	var nosuchobject *s3io.ErrNoSuchObject
	require.True(t, errors.As(err, &nosuchobject))
}

func TestUpDown(t *testing.T) {
	client := liveClient(t)
	ctx := context.Background()

	// generate a prefix to test with
	now := time.Now()
	prefix := fmt.Sprintf("test-%s/", now.Format("20060102150405"))

	// create some data to upload
	num_buffers := 3
	buffers := make([][]byte, num_buffers)
	for i := 0; i < num_buffers; i++ {
		size := 5*1024*1024 + mrand.Int31n(5*1024*1024)
		buffer := make([]byte, size)
		_, err := crand.Read(buffer)
		require.NoError(t, err)

		buffers[i] = buffer
	}

	// upload the buffers
	for idx, buffer := range buffers {
		key := fmt.Sprintf("%s%09d", prefix, idx)

		size, err := client.Upload(ctx, key, bytes.NewReader(buffer))
		require.NoError(t, err)
		require.Equal(t, len(buffer), int(size))
	}

	// download the buffers
	for idx, buffer := range buffers {
		key := fmt.Sprintf("%s%09d", prefix, idx)
		sink := manager.NewWriteAtBuffer(nil)

		size, err := client.Download(ctx, key, sink)

		require.NoError(t, err)
		require.Equal(t, len(buffer), int(size))
		require.Equal(t, buffer, sink.Bytes())
	}

	// and list them back
	var keys []string
	err := client.List(ctx, prefix, func(info *s3io.ObjectInfo) error {
		keys = append(keys, info.Key)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, keys, num_buffers)
}
