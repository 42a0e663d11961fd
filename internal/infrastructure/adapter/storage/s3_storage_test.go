package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	coremocks "github.com/amirhossein-jamali/socialhub/mocks/port/core"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	puts    []*s3.PutObjectInput
	bodies  []string
	deletes []string
	putErr  error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, string(data))
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StorageUpload(t *testing.T) {
	cfg := Config{Endpoint: "http://minio:9000", Bucket: "socialhub"}

	t.Run("should key objects by category and keep the extension", func(t *testing.T) {
		client := &fakeS3{}
		storage := NewS3StorageWithClient(client, cfg, coremocks.NewQuietLogger(t))

		url, err := storage.Upload(context.Background(), "products", "Cover.PNG", "image/png", strings.NewReader("png-bytes"))

		require.NoError(t, err)
		require.Len(t, client.puts, 1)
		key := aws.StringValue(client.puts[0].Key)
		assert.True(t, strings.HasPrefix(key, "products/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
		assert.Equal(t, "image/png", aws.StringValue(client.puts[0].ContentType))
		assert.Equal(t, "png-bytes", client.bodies[0])
		assert.Equal(t, "http://minio:9000/socialhub/"+key, url)
	})

	t.Run("should buffer non seekable readers", func(t *testing.T) {
		client := &fakeS3{}
		storage := NewS3StorageWithClient(client, cfg, coremocks.NewQuietLogger(t))

		_, err := storage.Upload(context.Background(), "files", "a.zip", "", io.NopCloser(strings.NewReader("zip")))

		require.NoError(t, err)
		assert.Equal(t, "zip", client.bodies[0])
		assert.Nil(t, client.puts[0].ContentType)
	})

	t.Run("should wrap client failures", func(t *testing.T) {
		boom := errors.New("boom")
		storage := NewS3StorageWithClient(&fakeS3{putErr: boom}, cfg, coremocks.NewQuietLogger(t))

		_, err := storage.Upload(context.Background(), "products", "a.jpg", "image/jpeg", strings.NewReader("x"))

		assert.ErrorIs(t, err, boom)
	})
}

func TestS3StorageDelete(t *testing.T) {
	client := &fakeS3{}
	storage := NewS3StorageWithClient(client, Config{Region: "eu-west-1", Bucket: "media"}, coremocks.NewQuietLogger(t))

	require.NoError(t, storage.Delete(context.Background(), "https://media.s3.eu-west-1.amazonaws.com/products/abc.jpg"))
	require.NoError(t, storage.Delete(context.Background(), "http://cdn.example.com/media/products/def.jpg"))

	assert.Equal(t, []string{"products/abc.jpg", "products/def.jpg"}, client.deletes)
	assert.Error(t, storage.Delete(context.Background(), ""))
}

func TestDisabledStorage(t *testing.T) {
	_, err := DisabledStorage{}.Upload(context.Background(), "products", "a.png", "image/png", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.NoError(t, DisabledStorage{}.Delete(context.Background(), "x"))
}
