package landmarks

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/repvision/internal/pose"
	"github.com/2beens/repvision/internal/telemetry/tracing"
)

const maxErrorBodyBytes = 1024

// Fetcher downloads landmark streams produced by the pose estimation stage.
type Fetcher struct {
	httpClient *http.Client
}

func NewFetcher(httpClient *http.Client) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
	}
}

// Stream is a frame stream backed by an open response body. Close must be
// called once the stream is no longer read.
type Stream struct {
	pose.Stream
	body io.ReadCloser
}

func (s *Stream) Close() error {
	return s.body.Close()
}

// Fetch opens the NDJSON landmark stream at url. Frames are decoded lazily
// while the pipeline reads them.
func (f *Fetcher) Fetch(ctx context.Context, url string) (_ *Stream, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "landmarks.fetch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new landmarks request: %w", err)
	}
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get landmarks: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("get landmarks: status %d: %s", resp.StatusCode, body)
	}

	return &Stream{
		Stream: pose.NewDecoderStream(resp.Body),
		body:   resp.Body,
	}, nil
}
