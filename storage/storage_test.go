package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "avatars/1/a.png", "https://cdn.example.com/avatars/1/a.png"},
		{"https://cdn.example.com/", "/avatars/1/a.png", "https://cdn.example.com/avatars/1/a.png"},
		{"http://localhost:8080/storage", "avatars/1/a.png", "http://localhost:8080/storage/avatars/1/a.png"},
		{"", "avatars/1/a.png", ""},
		{"https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, publicURL(tt.base, tt.key), tt.base+" + "+tt.key)
	}
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, validateKey("avatars/1/x.png"))
	for _, bad := range []string{"", "/abs", "../x", "a/../../b", "a//b", `a\b`} {
		assert.ErrorIs(t, validateKey(bad), ErrInvalidKey, bad)
	}
}

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	u, err := NewLocalUploader(dir, "http://localhost:8080/storage")
	require.NoError(t, err)

	ctx := context.Background()
	res, err := u.Upload(ctx, "avatars/7/pic.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/storage/avatars/7/pic.png", res.Location)
	assert.NotEmpty(t, res.ETag)

	data, err := os.ReadFile(filepath.Join(dir, "avatars", "7", "pic.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, u.Delete(ctx, "avatars/7/pic.png"))
	_, err = os.Stat(filepath.Join(dir, "avatars", "7", "pic.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting a missing object is not an error
	assert.NoError(t, u.Delete(ctx, "avatars/7/pic.png"))

	_, err = u.Upload(ctx, "../escape.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewCloudflareR2UploaderRequiresConfig(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	assert.Error(t, err)

	u, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{
		AccountID:       "acc",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "avatars",
		PublicBaseURL:   "https://pub.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pub.example.com/avatars/1/a.jpg", u.GetPublicURL("avatars/1/a.jpg"))
}
