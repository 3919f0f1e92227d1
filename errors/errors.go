package errors

import "fmt"

var (
	ErrNotWidget         = fmt.Errorf("submessage is not a widget event")
	ErrMalformedContent  = fmt.Errorf("malformed widget content")
	ErrMissingField      = fmt.Errorf("missing required field")
	ErrInvalidSubmessage = fmt.Errorf("invalid submessage")
	ErrUnknownWidgetType = fmt.Errorf("unknown widget type")
)
