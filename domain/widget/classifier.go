package widget

import (
	"bytes"
	"encoding/json"
)

// FindType reports the widget type declared by the first submessage.
// Every failure degrades to TypeUnknown.
func FindType(submessages []Submessage) Type {
	if len(submessages) == 0 {
		return TypeUnknown
	}
	content, ok := submessages[0].Text()
	if !ok || content == "" {
		return TypeUnknown
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil || fields == nil {
		return TypeUnknown
	}
	raw, ok := fields["widget_type"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return TypeUnknown
	}

	var widgetType string
	if err := json.Unmarshal(raw, &widgetType); err != nil {
		// Non-string discriminators are kept as their JSON text.
		return Type(raw)
	}
	return Type(widgetType)
}

// EventType reports which widget a single submessage addresses, judged by
// its discriminators alone. Content that cannot be read is TypeUnknown.
func EventType(submessage Submessage) Type {
	content, ok := submessage.Text()
	if !ok {
		return TypeUnknown
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil || fields == nil {
		return TypeUnknown
	}

	switch widgetType := Type(discriminator(fields, "widget_type")); widgetType {
	case TypePoll, TypeTodo:
		return widgetType
	}
	switch discriminator(fields, "type") {
	case "question", "vote", "new_option":
		return TypePoll
	case "new_task", "strike", "new_task_list_title":
		return TypeTodo
	}
	return TypeUnknown
}
