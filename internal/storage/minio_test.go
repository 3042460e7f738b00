package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"capsterapi/internal/config"
)

func TestNewMinIO_ConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestMinioStorage_PublicURL(t *testing.T) {
	t.Run("http endpoint", func(t *testing.T) {
		m := &minioStorage{bucket: "posts", endpoint: "localhost:9000", useSSL: false}
		assert.Equal(t, "http://localhost:9000/posts/tech-1/123_cut.jpg", m.PublicURL("tech-1/123_cut.jpg"))
	})

	t.Run("https endpoint", func(t *testing.T) {
		m := &minioStorage{bucket: "posts", endpoint: "cdn.example.com", useSSL: true}
		assert.Equal(t, "https://cdn.example.com/posts/a/b.png", m.PublicURL("a/b.png"))
	})
}
