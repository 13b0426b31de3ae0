//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/repvision/internal/analysis"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any, withToken bool) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestHealthAndExercises() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status, body := s.doRequest(ctx, "GET", "/health", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status": "ok", "version": "test-version-info", "jobs": true}`, string(body))

	status, body = s.doRequest(ctx, "GET", "/exercises", nil, false)
	require.Equal(t, http.StatusOK, status)
	var exercisesResp struct {
		Exercises []struct {
			Name string `json:"name"`
		} `json:"exercises"`
	}
	require.NoError(t, json.Unmarshal(body, &exercisesResp))
	names := make([]string, 0, len(exercisesResp.Exercises))
	for _, e := range exercisesResp.Exercises {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"squat", "barbell_curl", "pushup"}, names)
}

func (s *IntegrationTestSuite) TestAnalysis() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	analyzeReq := analysis.AnalyzeRequest{
		VideoID:      "integration-video-1",
		ExerciseName: "Squat",
		Frames:       squatFrames(170, 90, 170, 120, 170),
	}

	status, _ := s.doRequest(ctx, "POST", "/analysis", analyzeReq, false)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 0, s.countRecords(analyzeReq.VideoID))

	status, body := s.doRequest(ctx, "POST", "/analysis", analyzeReq, true)
	require.Equal(t, http.StatusCreated, status, string(body))

	var record analysis.Record
	require.NoError(t, json.Unmarshal(body, &record))
	assert.Equal(t, analyzeReq.VideoID, record.VideoID)
	assert.Equal(t, "squat", record.Exercise)
	assert.Equal(t, analysis.OutcomeWithFeedback, record.Outcome)
	assert.Equal(t, 1, record.CorrectReps)
	assert.Equal(t, 1, record.WrongReps)
	assert.NotEmpty(t, record.Feedback)
	assert.Equal(t, 1, s.countRecords(analyzeReq.VideoID))

	status, body = s.doRequest(ctx, "GET", "/analysis/"+record.ID.String(), nil, true)
	require.Equal(t, http.StatusOK, status)
	var stored analysis.Record
	require.NoError(t, json.Unmarshal(body, &stored))
	assert.Equal(t, record.ID, stored.ID)
	assert.Equal(t, record.Result(), stored.Result())

	status, body = s.doRequest(ctx, "GET", "/analysis/video/"+analyzeReq.VideoID, nil, true)
	require.Equal(t, http.StatusOK, status)
	var listResp analysis.ListResponse
	require.NoError(t, json.Unmarshal(body, &listResp))
	assert.Equal(t, 1, listResp.Total)

	status, body = s.doRequest(ctx, "GET", "/analysis/list/page/1/size/10", nil, true)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &listResp))
	assert.GreaterOrEqual(t, listResp.Total, 1)

	status, _ = s.doRequest(ctx, "GET", fmt.Sprintf("/analysis/%s", "not-a-uuid"), nil, true)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestAnalysis_UnsupportedExercise() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status, body := s.doRequest(ctx, "POST", "/analysis", analysis.AnalyzeRequest{
		VideoID:      "integration-video-2",
		ExerciseName: "deadlift",
		Frames:       squatFrames(170, 90, 170),
	}, true)
	require.Equal(t, http.StatusCreated, status, string(body))

	var record analysis.Record
	require.NoError(t, json.Unmarshal(body, &record))
	assert.Equal(t, analysis.OutcomeUnsupported, record.Outcome)
	assert.Zero(t, record.CorrectReps)
	assert.Zero(t, record.WrongReps)
}
