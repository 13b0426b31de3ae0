package feedback

import (
	"fmt"
	"strings"
)

const (
	Separator = " | "

	CorrectRepetition = "correct repetition"
	DetectionFailed   = "detection failed"
)

// Set collects distinct feedback messages in the order they first appeared.
// The zero value is ready to use.
type Set struct {
	seen     map[string]struct{}
	messages []string
}

// Add stores msg unless it is empty or already present. It reports whether
// the set changed.
func (s *Set) Add(msg string) bool {
	if msg == "" {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[msg]; ok {
		return false
	}
	s.seen[msg] = struct{}{}
	s.messages = append(s.messages, msg)
	return true
}

func (s *Set) Len() int {
	return len(s.messages)
}

// Messages returns a copy of the collected messages.
func (s *Set) Messages() []string {
	return append([]string(nil), s.messages...)
}

// Summary is the final message of an analysis run.
func Summary(exerciseName string, correct, wrong int, set *Set) string {
	switch {
	case correct > 0 && wrong == 0 && set.Len() == 0:
		return GoodForm(correct)
	case correct == 0 && wrong == 0:
		return NotDetected(exerciseName)
	default:
		return strings.Join(set.messages, Separator)
	}
}

func GoodForm(correct int) string {
	if correct == 1 {
		return "1 repetition completed with good form"
	}
	return fmt.Sprintf("%d repetitions completed with good form", correct)
}

func NotDetected(exerciseName string) string {
	return fmt.Sprintf("no %s repetitions were detected", exerciseName)
}

func Unsupported(exerciseName string) string {
	return fmt.Sprintf("exercise %q is not supported", exerciseName)
}

func CouldNotProcess(err error) string {
	return fmt.Sprintf("video could not be processed: %s", err)
}
