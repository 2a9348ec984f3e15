package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"uigl/pkg/drawlist"
)

// Backend draws UI frames. The demo loop only depends on this interface.
type Backend interface {
	// Render draws one frame. It must not be called again before the
	// caller has presented the previous frame.
	Render(src drawlist.Source) error
	// Stats describes the last rendered frame.
	Stats() Stats
	// Dispose releases all GPU objects. Later calls are no-ops.
	Dispose()
}

var (
	// ErrFrameTooLarge is matched by every *CapacityError.
	ErrFrameTooLarge = errors.New("frame exceeds streaming buffer capacity")
	// ErrDisposed is returned by Render after Dispose.
	ErrDisposed = errors.New("renderer disposed")
)

// CapacityError reports a frame that does not fit the streaming buffers, or
// whose commands consume more indices than the frame holds. Nothing was
// drawn for that frame.
type CapacityError struct {
	What  string // "vertices", "indices" or "elements"
	Need  int
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: %s need %d, limit %d", ErrFrameTooLarge, e.What, e.Need, e.Limit)
}

func (e *CapacityError) Unwrap() error { return ErrFrameTooLarge }

// Stats describes one rendered frame.
type Stats struct {
	Commands    int
	DrawCalls   int
	Vertices    int
	Indices     int
	UploadBytes int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d draw calls, %d vertices, %d indices (%.1f KiB uploaded)",
		s.DrawCalls, s.Vertices, s.Indices, float64(s.UploadBytes)/1024)
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("commands", s.Commands),
		slog.Int("draw_calls", s.DrawCalls),
		slog.Int("vertices", s.Vertices),
		slog.Int("indices", s.Indices),
		slog.Int("upload_bytes", s.UploadBytes),
	)
}
