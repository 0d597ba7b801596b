package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeS3 records calls instead of talking to a bucket
type fakeS3 struct {
	puts         []*s3.PutObjectInput
	bodies       []string
	deleteCalls  [][]string
	deleteErr    error
	failKeys     map[string]bool
	headErr      error
	createErr    error
	createCalled bool
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjects(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	keys := make([]string, 0, len(in.Delete.Objects))
	out := &s3.DeleteObjectsOutput{}
	for _, o := range in.Delete.Objects {
		k := aws.ToString(o.Key)
		keys = append(keys, k)
		if f.failKeys[k] {
			out.Errors = append(out.Errors, types.Error{Key: o.Key, Code: aws.String("AccessDenied"), Message: aws.String("denied")})
		}
	}
	f.deleteCalls = append(f.deleteCalls, keys)
	return out, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(context.Context, *s3.CreateBucketInput, ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.createCalled = true
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &s3.CreateBucketOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{}
	store := newS3Store(fake, "attachments")

	err := store.Put(ctx, "sales/1/slip.png", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)
	in := fake.puts[0]
	assert.Equal(t, "attachments", aws.ToString(in.Bucket))
	assert.Equal(t, "sales/1/slip.png", aws.ToString(in.Key))
	assert.Equal(t, "image/png", aws.ToString(in.ContentType))
	assert.EqualValues(t, 9, aws.ToInt64(in.ContentLength))
	assert.Equal(t, "png-bytes", fake.bodies[0])

	assert.Error(t, store.Put(ctx, "", "", strings.NewReader(""), 0))
}

func TestS3Store_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("batches keys", func(t *testing.T) {
		fake := &fakeS3{}
		store := newS3Store(fake, "attachments")

		keys := make([]string, deleteBatchSize+5)
		for i := range keys {
			keys[i] = fmt.Sprintf("sales/x/%d", i)
		}
		require.NoError(t, store.Delete(ctx, keys...))
		require.Len(t, fake.deleteCalls, 2)
		assert.Len(t, fake.deleteCalls[0], deleteBatchSize)
		assert.Len(t, fake.deleteCalls[1], 5)
	})

	t.Run("no keys makes no call", func(t *testing.T) {
		fake := &fakeS3{}
		require.NoError(t, newS3Store(fake, "b").Delete(ctx))
		assert.Empty(t, fake.deleteCalls)
	})

	t.Run("per key failures are reported", func(t *testing.T) {
		fake := &fakeS3{failKeys: map[string]bool{"b": true}}
		err := newS3Store(fake, "bucket").Delete(ctx, "a", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AccessDenied")
	})

	t.Run("request failure", func(t *testing.T) {
		fake := &fakeS3{deleteErr: errors.New("connection reset")}
		err := newS3Store(fake, "bucket").Delete(ctx, "a")
		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestS3Store_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket", func(t *testing.T) {
		fake := &fakeS3{}
		require.NoError(t, newS3Store(fake, "b").EnsureBucket(ctx))
		assert.False(t, fake.createCalled)
	})

	t.Run("missing bucket is created", func(t *testing.T) {
		fake := &fakeS3{headErr: &types.NotFound{}}
		store := newS3Store(fake, "b", WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, store.EnsureBucket(ctx))
		assert.True(t, fake.createCalled)
	})

	t.Run("creation race is tolerated", func(t *testing.T) {
		fake := &fakeS3{headErr: &types.NoSuchBucket{}, createErr: &types.BucketAlreadyOwnedByYou{}}
		assert.NoError(t, newS3Store(fake, "b").EnsureBucket(ctx))
	})

	t.Run("other errors surface", func(t *testing.T) {
		fake := &fakeS3{headErr: errors.New("forbidden")}
		assert.Error(t, newS3Store(fake, "b").EnsureBucket(ctx))
		assert.False(t, fake.createCalled)
	})
}

func TestNewS3Store(t *testing.T) {
	ctx := context.Background()

	_, err := NewS3Store(ctx, config.StorageConfig{Region: "us-east-1"})
	assert.ErrorContains(t, err, "bucket is required")

	_, err = NewS3Store(ctx, config.StorageConfig{Bucket: "b", Region: "us-east-1", AccessKey: "only-key"})
	assert.ErrorContains(t, err, "set together")

	store, err := NewS3Store(ctx, config.StorageConfig{
		Bucket:       "b",
		Region:       "us-east-1",
		Endpoint:     "localhost:9000",
		AccessKey:    "minio",
		SecretKey:    "minio123",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "b", store.Bucket())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "k1", "text/plain", strings.NewReader("hello"), 5))
	require.NoError(t, store.Put(ctx, "k2", "", strings.NewReader("x"), 1))

	obj, ok := store.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "text/plain", obj.ContentType)
	assert.Equal(t, []byte("hello"), obj.Data)

	require.NoError(t, store.Delete(ctx, "k1", "missing"))
	_, ok = store.Get("k1")
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestNewAttachmentStore_Disabled(t *testing.T) {
	store, err := NewAttachmentStore(context.Background(), config.StorageConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}
