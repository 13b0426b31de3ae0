package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidJob = errors.New("invalid job")

// Job asks for the analysis of one recorded video. The landmarks of the video
// are fetched from LandmarksURL as an NDJSON frame stream.
type Job struct {
	VideoID      string `json:"videoId"`
	LandmarksURL string `json:"landmarksUrl"`
	ExerciseName string `json:"exerciseName"`
}

func (j Job) Validate() error {
	var missing []string
	if strings.TrimSpace(j.VideoID) == "" {
		missing = append(missing, "videoId")
	}
	if strings.TrimSpace(j.LandmarksURL) == "" {
		missing = append(missing, "landmarksUrl")
	}
	if strings.TrimSpace(j.ExerciseName) == "" {
		missing = append(missing, "exerciseName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidJob, strings.Join(missing, ", "))
	}
	return nil
}

// ParseJob decodes and validates a queued message.
func ParseJob(message []byte) (*Job, error) {
	job := &Job{}
	if err := json.Unmarshal(message, job); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJob, err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}
