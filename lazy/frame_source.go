package lazy

import (
	"github.com/tnn1t1s/golars/frame"
	"github.com/tnn1t1s/golars/datatypes"
)

// FrameSource is an in-memory data source for lazy execution.
type FrameSource struct {
	NameValue string
	Frame     *frame.DataFrame
}

func (s *FrameSource) Name() string {
	if s.NameValue != "" {
		return s.NameValue
	}
	return "in-memory"
}

func (s *FrameSource) Schema() (*datatypes.Schema, error) {
	if s.Frame == nil {
		return nil, errMissingSource
	}
	return s.Frame.Schema(), nil
}

func (s *FrameSource) DataFrame() (*frame.DataFrame, error) {
	if s.Frame == nil {
		return nil, errMissingSource
	}
	return s.Frame, nil
}
