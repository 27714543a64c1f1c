package vlog

import (
	"log/slog"
	"time"
)

// Span measures one named region. Spans are plain values: create one with
// Start around the region and call End when it is done.
type Span struct {
	name  string
	start time.Time
	now   func() time.Time
}

// Start begins measuring the region called name.
func Start(name string) *Span {
	return &Span{name: name, start: time.Now(), now: time.Now}
}

// End stops the span, logs the elapsed time at debug level and returns it.
// Calling End more than once logs again with the time since Start.
func (s *Span) End(attrs ...slog.Attr) time.Duration {
	took := s.now().Sub(s.start)
	args := make([]any, 0, len(attrs)+3)
	args = append(args,
		slog.String("region", s.name),
		slog.Duration("took", took),
		slog.String("rating", Rating(took)),
	)
	for _, a := range attrs {
		args = append(args, a)
	}
	Logger().Debug("timing", args...)
	return took
}

// Rating buckets a duration the way the viewer reports it.
func Rating(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	switch {
	case ms < 6:
		return "LIGHTNING FAST"
	case ms < 30:
		return "FAST"
	case ms < 100:
		return "MODERATE"
	case ms < 160:
		return "SLOW"
	case ms < 250:
		return "VERY SLOW"
	default:
		return "BLOCKING"
	}
}
