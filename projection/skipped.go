// Package projection builds widget snapshots from observed submessages.
// Each call replays the full sequence in order into a fresh snapshot.
// Does not store state, emit events or render anything.
package projection

import (
	"errors"
	"widget-lab/domain/widget"
	apperrors "widget-lab/errors"
)

// Skipped records a widget event that could not be applied.
type Skipped struct {
	Index int
	Err   error
}

// decodeAt wraps widget.Decode for the fold of one widget type: events without
// widget content are filtered out silently, and so are broken events addressed
// to the other widget. Other decoding failures are reported as Skipped.
func decodeAt(index int, submessage widget.Submessage, widgetType widget.Type) (widget.Envelope, *Skipped) {
	envelope, err := widget.Decode(submessage)
	switch {
	case err == nil:
		return envelope, nil
	case errors.Is(err, apperrors.ErrNotWidget):
		return nil, nil
	}
	if owner := widget.EventType(submessage); owner != widget.TypeUnknown && owner != widgetType {
		return nil, nil
	}
	return nil, &Skipped{Index: index, Err: err}
}
