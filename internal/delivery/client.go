package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/repvision/internal/analysis"
	"github.com/2beens/repvision/internal/telemetry/tracing"
)

const maxErrorBodyBytes = 1024

// Payload is the body the results backend expects.
type Payload struct {
	VideoID     string `json:"videoId"`
	CorrectReps int    `json:"correctReps"`
	WrongReps   int    `json:"wrongReps"`
	Feedback    string `json:"feedback"`
}

func NewPayload(videoID string, result analysis.Result) Payload {
	return Payload{
		VideoID:     videoID,
		CorrectReps: result.CorrectReps,
		WrongReps:   result.WrongReps,
		Feedback:    result.Feedback,
	}
}

// Client posts analysis results to the downstream backend.
type Client struct {
	resultsURL string
	httpClient *http.Client
}

func NewClient(resultsURL string, httpClient *http.Client) *Client {
	return &Client{
		resultsURL: resultsURL,
		httpClient: httpClient,
	}
}

// BackendResultsURL joins the backend address parts the way they are
// configured.
func BackendResultsURL(host string, port int, path string) string {
	return fmt.Sprintf("http://%s:%d%s", host, port, path)
}

func (c *Client) Deliver(ctx context.Context, videoID string, result analysis.Result) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "delivery.deliver")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("video-id", videoID))

	payloadJson, err := json.Marshal(NewPayload(videoID, result))
	if err != nil {
		return fmt.Errorf("marshal result payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resultsURL, bytes.NewReader(payloadJson))
	if err != nil {
		return fmt.Errorf("new delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post results to [%s]: %w", c.resultsURL, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warnf("close delivery response body: %s", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("backend rejected results of video [%s]: status %d: %s", videoID, resp.StatusCode, body)
	}

	log.Debugf("results of video [%s] delivered", videoID)
	return nil
}
