package interaction

import (
	"context"
	"errors"
)

// MultiSink fans every interaction out to each enabled sink.
type MultiSink []Sink

// Enabled reports whether at least one sink is enabled.
func (m MultiSink) Enabled() bool {
	for _, s := range m {
		if s != nil && s.Enabled() {
			return true
		}
	}
	return false
}

// Send delivers to every enabled sink and joins their errors.
func (m MultiSink) Send(ctx context.Context, item Interaction) error {
	var errs []error
	for _, s := range m {
		if s == nil || !s.Enabled() {
			continue
		}
		if err := s.Send(ctx, item); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
