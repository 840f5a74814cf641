package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleepwell_store_v1_202610/internal/model"
)

// stubImages 固定前缀或固定错误
type stubImages struct {
	prefix string
	err    error
}

func (s *stubImages) PublicURL(_ context.Context, path string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.prefix + "/" + path, nil
}

var errSigning = errors.New("signing unavailable")

func TestStorageService_URLForPath(t *testing.T) {
	ctx := context.Background()
	svc := NewStorageServiceWithProvider(&stubImages{prefix: "https://signed.test"})

	url, err := svc.URLForPath(ctx, "products/1/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.test/products/1/cover.jpg", url)

	url, err = svc.URLForPath(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "", url)

	_, err = NewStorageServiceWithProvider(&stubImages{err: errSigning}).URLForPath(ctx, "a.jpg")
	assert.ErrorIs(t, err, errSigning)

	var none *StorageService
	url, err = none.URLForPath(ctx, "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", url)
}

func TestLocalImages_PublicURL(t *testing.T) {
	svc, err := NewStorageService(&StorageConfig{Provider: "local", BaseURL: "https://img.sleepwell.test/"})
	require.NoError(t, err)

	url, err := svc.ImageURL(context.Background(), &model.ProductImage{Path: "/products/1/cover.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "https://img.sleepwell.test/products/1/cover.jpg", url)

	url, err = svc.ImageURL(context.Background(), &model.ProductImage{Path: "https://cdn.other/x.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.other/x.jpg", url)

	url, err = svc.ImageURL(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", url)
}

func TestS3Images_CDN(t *testing.T) {
	p, err := NewS3Images(&StorageConfig{
		Region:    "us-east-1",
		Bucket:    "sleepwell-assets",
		AccessKey: "test",
		SecretKey: "test",
		CDNDomain: "cdn.sleepwell.test",
	})
	require.NoError(t, err)

	url, err := p.PublicURL(context.Background(), "products/1/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.sleepwell.test/products/1/cover.jpg", url)
}

func TestS3Images_Presign(t *testing.T) {
	p, err := NewS3Images(&StorageConfig{
		Region:    "us-east-1",
		Bucket:    "sleepwell-assets",
		AccessKey: "test",
		SecretKey: "test",
		Expires:   10 * time.Minute,
	})
	require.NoError(t, err)

	// 签名在本地完成，不访问网络
	url, err := p.PublicURL(context.Background(), "products/1/cover.jpg")
	require.NoError(t, err)
	assert.Contains(t, url, "sleepwell-assets")
	assert.Contains(t, url, "products/1/cover.jpg")
	assert.Contains(t, url, "X-Amz-Signature")
}

func TestNewImageProvider_Unknown(t *testing.T) {
	_, err := NewImageProvider(&StorageConfig{Provider: "ftp"})
	assert.Error(t, err)
}
