package s3_test

import (
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.hotel.test/"
	cfg.External.S3.APIEndpoint = "http://localhost:9000"

	storage := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "own object", url: "https://cdn.hotel.test/room/3f2a.png", expected: "3f2a.png"},
		{name: "other directory", url: "https://cdn.hotel.test/user/3f2a.png", expected: ""},
		{name: "nested key", url: "https://cdn.hotel.test/room/a/b.png", expected: ""},
		{name: "foreign host", url: "https://images.example.com/room/3f2a.png", expected: ""},
		{name: "empty", url: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, storage.GetObjectNameFromURL("room", tt.url))
		})
	}
}
