package landmarks_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/repvision/internal/landmarks"
	"github.com/2beens/repvision/internal/pose"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos/7/landmarks.ndjson", r.URL.Path)
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = io.WriteString(w, `null
{"landmarks": {"left_hip": {"x": 0.4, "y": 0.5, "z": 0, "visibility": 0.9}}}
`)
	}))
	defer server.Close()

	fetcher := landmarks.NewFetcher(server.Client())
	stream, err := fetcher.Fetch(context.Background(), server.URL+"/videos/7/landmarks.ndjson")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, stream.Close())
	}()

	first, err := stream.Next()
	require.NoError(t, err)
	assert.Nil(t, first)

	second, err := stream.Next()
	require.NoError(t, err)
	hip, ok := second.Landmark(pose.LeftHip)
	require.True(t, ok)
	assert.Equal(t, 0.4, hip.X)

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFetcher_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such video", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := landmarks.NewFetcher(server.Client())
	stream, err := fetcher.Fetch(context.Background(), server.URL)
	assert.Nil(t, stream)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404: no such video")
}

func TestFetcher_Fetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	fetcher := landmarks.NewFetcher(http.DefaultClient)
	_, err := fetcher.Fetch(context.Background(), url)
	assert.Error(t, err)
}
