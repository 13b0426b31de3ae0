package pose

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Stream delivers frame snapshots in arrival order. It is consumed once.
// Next returns a nil snapshot for a frame where no person was detected and
// io.EOF after the last frame.
type Stream interface {
	Next() (*Snapshot, error)
}

type sliceStream struct {
	frames []*Snapshot
	pos    int
}

// NewSliceStream streams an in-memory frame sequence.
func NewSliceStream(frames []*Snapshot) Stream {
	return &sliceStream{frames: frames}
}

func (s *sliceStream) Next() (*Snapshot, error) {
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}
	frame := s.frames[s.pos]
	s.pos++
	return frame, nil
}

type decoderStream struct {
	dec   *json.Decoder
	frame int
}

// NewDecoderStream reads a sequence of JSON values, one per frame (NDJSON or
// a plain concatenation). A literal null encodes an undetected frame.
func NewDecoderStream(r io.Reader) Stream {
	return &decoderStream{dec: json.NewDecoder(r)}
}

func (s *decoderStream) Next() (*Snapshot, error) {
	var snapshot *Snapshot
	if err := s.dec.Decode(&snapshot); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("decode frame %d: %w", s.frame, err)
	}
	s.frame++
	return snapshot, nil
}
