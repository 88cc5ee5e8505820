// Package s3iotest provides an in-memory s3io.Client for tests.
package s3iotest

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/studio1767/s3tree/internal/s3io"
)

type object struct {
	data         []byte
	lastModified time.Time
	storageClass string
}

// MemClient keeps objects in a map. The exported error maps inject
// failures for individual keys; Now stamps LastModified on upload.
type MemClient struct {
	Exists bool
	Now    func() time.Time

	FailHead     map[string]error
	FailUpload   map[string]error
	FailDownload map[string]error

	lock      sync.Mutex
	bucket    string
	objects   map[string]*object
	uploads   []string
	downloads []string
	heads     int
}

func NewMemClient(bucket string) *MemClient {
	return &MemClient{
		Exists:       true,
		Now:          time.Now,
		FailHead:     make(map[string]error),
		FailUpload:   make(map[string]error),
		FailDownload: make(map[string]error),
		bucket:       bucket,
		objects:      make(map[string]*object),
	}
}

// Put stores an object directly, bypassing the upload bookkeeping.
func (mc *MemClient) Put(key string, data []byte, lastModified time.Time) {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	mc.objects[key] = &object{
		data:         data,
		lastModified: lastModified,
	}
}

// SetStorageClass changes the storage class of an existing object.
func (mc *MemClient) SetStorageClass(key, storageClass string) {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	if obj, ok := mc.objects[key]; ok {
		obj.storageClass = storageClass
	}
}

// Get returns a copy of the stored object data.
func (mc *MemClient) Get(key string) ([]byte, bool) {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	obj, ok := mc.objects[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), obj.data...), true
}

// Keys returns all stored keys in sorted order.
func (mc *MemClient) Keys() []string {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	return mc.sortedKeys()
}

// Uploads returns the keys uploaded so far, in completion order.
func (mc *MemClient) Uploads() []string {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	return append([]string(nil), mc.uploads...)
}

// Downloads returns the keys downloaded so far, in completion order.
func (mc *MemClient) Downloads() []string {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	return append([]string(nil), mc.downloads...)
}

func (mc *MemClient) Heads() int {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	return mc.heads
}

func (mc *MemClient) Bucket() string {
	return mc.bucket
}

func (mc *MemClient) BucketExists(ctx context.Context) (bool, error) {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	return mc.Exists, nil
}

func (mc *MemClient) CreateBucket(ctx context.Context) error {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	mc.Exists = true
	return nil
}

func (mc *MemClient) Head(ctx context.Context, key string) (*s3io.ObjectInfo, error) {
	mc.lock.Lock()
	defer mc.lock.Unlock()

	mc.heads++
	if err := mc.FailHead[key]; err != nil {
		return nil, err
	}

	obj, ok := mc.objects[key]
	if !ok {
		return nil, s3io.NewErrNoSuchObject(key)
	}

	return mc.info(key, obj), nil
}

func (mc *MemClient) List(ctx context.Context, prefix string, fn func(*s3io.ObjectInfo) error) error {
	mc.lock.Lock()
	if !mc.Exists {
		mc.lock.Unlock()
		return s3io.NewErrNoSuchBucket(mc.bucket, nil)
	}

	var infos []*s3io.ObjectInfo
	for _, key := range mc.sortedKeys() {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, mc.info(key, mc.objects[key]))
		}
	}
	mc.lock.Unlock()

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(info); err != nil {
			return err
		}
	}

	return nil
}

func (mc *MemClient) Upload(ctx context.Context, key string, source io.Reader) (int64, error) {
	mc.lock.Lock()
	failure := mc.FailUpload[key]
	mc.lock.Unlock()

	if failure != nil {
		return 0, failure
	}

	data, err := io.ReadAll(source)
	if err != nil {
		return 0, err
	}

	mc.lock.Lock()
	defer mc.lock.Unlock()

	mc.objects[key] = &object{
		data:         data,
		lastModified: mc.Now(),
	}
	mc.uploads = append(mc.uploads, key)

	return int64(len(data)), nil
}

func (mc *MemClient) Download(ctx context.Context, key string, sink io.WriterAt) (int64, error) {
	mc.lock.Lock()
	failure := mc.FailDownload[key]
	obj, ok := mc.objects[key]
	var data []byte
	var storageClass string
	if ok {
		data, storageClass = obj.data, obj.storageClass
	}
	mc.lock.Unlock()

	if failure != nil {
		return 0, failure
	}
	if !ok {
		return 0, s3io.NewErrNoSuchObject(key)
	}
	if !s3io.Downloadable(storageClass) {
		return 0, s3io.NewErrNotDownloadable(key, storageClass)
	}

	n, err := sink.WriteAt(data, 0)
	if err != nil {
		return int64(n), err
	}

	mc.lock.Lock()
	mc.downloads = append(mc.downloads, key)
	mc.lock.Unlock()

	return int64(n), nil
}

func (mc *MemClient) info(key string, obj *object) *s3io.ObjectInfo {
	return &s3io.ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.data)),
		LastModified: obj.lastModified,
		StorageClass: obj.storageClass,
	}
}

func (mc *MemClient) sortedKeys() []string {
	keys := make([]string, 0, len(mc.objects))
	for key := range mc.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
