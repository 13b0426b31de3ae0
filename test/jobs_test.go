//go:build integration

package test

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/repvision/internal/delivery"
	"github.com/2beens/repvision/internal/feedback"
	"github.com/2beens/repvision/internal/jobs"
)

func (s *IntegrationTestSuite) newQueue() *jobs.Queue {
	rdb := redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort("localhost", s.redisPort),
	})
	s.T().Cleanup(func() {
		_ = rdb.Close()
	})
	return jobs.NewQueue(rdb, "analysis-jobs-test", time.Second)
}

func (s *IntegrationTestSuite) awaitDelivery(videoID string) delivery.Payload {
	timeout := time.After(10 * time.Second)
	for {
		select {
		case payload := <-s.deliveries:
			if payload.VideoID == videoID {
				return payload
			}
		case <-timeout:
			s.T().Fatalf("no results delivered for video [%s]", videoID)
			return delivery.Payload{}
		}
	}
}

func (s *IntegrationTestSuite) TestJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()
	queue := s.newQueue()

	require.NoError(t, queue.Push(ctx, jobs.Job{
		VideoID:      "job-video-1",
		LandmarksURL: s.landmarks.URL + "/job-video-1",
		ExerciseName: "squat",
	}))

	payload := s.awaitDelivery("job-video-1")
	assert.Equal(t, 2, payload.CorrectReps)
	assert.Equal(t, 1, payload.WrongReps)
	assert.NotEmpty(t, payload.Feedback)
	assert.Equal(t, 1, s.countRecords("job-video-1"))

	length, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, length)
}

func (s *IntegrationTestSuite) TestJobs_Failures() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()
	queue := s.newQueue()

	require.NoError(t, queue.Push(ctx, jobs.Job{
		VideoID:      "job-video-2",
		LandmarksURL: s.landmarks.URL + "/job-video-2",
		ExerciseName: "bench press",
	}))
	payload := s.awaitDelivery("job-video-2")
	assert.Equal(t, delivery.Payload{
		VideoID:  "job-video-2",
		Feedback: feedback.Unsupported("bench press"),
	}, payload)

	require.NoError(t, queue.Push(ctx, jobs.Job{
		VideoID:      "job-video-3",
		LandmarksURL: s.landmarks.URL + "/missing",
		ExerciseName: "squat",
	}))
	payload = s.awaitDelivery("job-video-3")
	assert.Zero(t, payload.CorrectReps)
	assert.Zero(t, payload.WrongReps)
	assert.True(t, strings.HasPrefix(payload.Feedback, "video could not be processed"), payload.Feedback)
	assert.Equal(t, 0, s.countRecords("job-video-3"))
}
