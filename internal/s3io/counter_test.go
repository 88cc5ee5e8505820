package s3io_test

import (
	"bytes"
	"crypto/rand"
	"io"

	"github.com/stretchr/testify/require"
	"testing"

	"github.com/studio1767/s3tree/internal/s3io"
)

func TestReadCounterIsZeroWhenCreated(t *testing.T) {
	rc := s3io.NewReadCounter(new(bytes.Buffer))
	defer rc.Close()

	require.Equal(t, 0, rc.TotalReads())
	require.Equal(t, int64(0), rc.TotalBytes())
}

func TestOneReadCountsOne(t *testing.T) {
	var dsize int64 = 1024

	srcData := make([]byte, dsize)
	rc := s3io.NewReadCounter(bytes.NewBuffer(srcData))
	defer rc.Close()

	dstData := make([]byte, dsize)
	size, err := rc.Read(dstData)

	require.NoError(t, err)
	require.Equal(t, dsize, int64(size))
	require.Equal(t, 1, rc.TotalReads())
	require.Equal(t, dsize, rc.TotalBytes())
}

func TestFiveReadsCountsFive(t *testing.T) {
	var dsize int64 = 1024

	srcData := make([]byte, dsize*5)
	rc := s3io.NewReadCounter(bytes.NewBuffer(srcData))
	defer rc.Close()

	dstData := make([]byte, dsize)

	for i := 0; i < 5; i++ {
		size, err := rc.Read(dstData)
		require.NoError(t, err)
		require.Equal(t, dsize, int64(size))
	}

	require.Equal(t, 5, rc.TotalReads())
	require.Equal(t, 5*dsize, rc.TotalBytes())
}

func TestReadDataMatches(t *testing.T) {
	var dsize int64 = 1024

	srcData := make([]byte, dsize)
	rndsize, err := rand.Read(srcData)

	require.NoError(t, err)
	require.Equal(t, dsize, int64(rndsize))

	rc := s3io.NewReadCounter(bytes.NewBuffer(srcData))
	defer rc.Close()

	dstData, err := io.ReadAll(rc)

	require.NoError(t, err)
	require.Equal(t, dsize, rc.TotalBytes())
	require.Zero(t, bytes.Compare(srcData, dstData))
}

func TestDownloadableStorageClasses(t *testing.T) {
	require.True(t, s3io.Downloadable(""))
	require.True(t, s3io.Downloadable("STANDARD"))
	require.True(t, s3io.Downloadable("STANDARD_IA"))
	require.False(t, s3io.Downloadable("GLACIER"))
	require.False(t, s3io.Downloadable("DEEP_ARCHIVE"))
}
