package widget

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"widget-lab/errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Key is a JSON scalar kept as its literal text, so "3" and 3 both read "3".
type Key string

func (k *Key) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*k = Key(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*k = Key(number.String())
	return nil
}

type pollCreatedPayload struct {
	ExtraData *struct {
		Question *string  `json:"question" validate:"required"`
		Options  []string `json:"options"`
	} `json:"extra_data" validate:"required"`
}

type questionPayload struct {
	Question *string `json:"question" validate:"required"`
}

type votePayload struct {
	Key  *Key     `json:"key" validate:"required"`
	Vote *float64 `json:"vote" validate:"required"`
}

type newOptionPayload struct {
	Idx    *Key    `json:"idx" validate:"required"`
	Option *string `json:"option" validate:"required"`
}

type todoCreatedPayload struct {
	ExtraData *struct {
		TaskListTitle *string `json:"task_list_title"`
		Tasks         []struct {
			Task *string `json:"task" validate:"required"`
			Desc *string `json:"desc"`
		} `json:"tasks" validate:"dive"`
	} `json:"extra_data"`
}

type newTaskPayload struct {
	Key  *Key    `json:"key" validate:"required"`
	Task *string `json:"task" validate:"required"`
	Desc *string `json:"desc"`
}

type strikePayload struct {
	Key *Key `json:"key" validate:"required"`
}

type titlePayload struct {
	Title *string `json:"title"`
}

// Decode turns a widget submessage into its Envelope.
//
// It returns ErrNotWidget for events that carry no widget content,
// ErrMalformedContent when the content is not the expected JSON, and
// ErrMissingField when a required field is absent.
func Decode(submessage Submessage) (Envelope, error) {
	if submessage.MsgType != MsgTypeWidget {
		return nil, errors.ErrNotWidget
	}
	content, ok := submessage.Text()
	if !ok {
		return nil, errors.ErrNotWidget
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedContent, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: content is not an object", errors.ErrMalformedContent)
	}

	widgetType := discriminator(fields, "widget_type")
	switch Type(widgetType) {
	case TypePoll:
		return decodePollCreated(content)
	case TypeTodo:
		return decodeTodoCreated(content)
	}

	kind := discriminator(fields, "type")
	switch kind {
	case "question":
		payload, err := decodePayload[questionPayload](content)
		if err != nil {
			return nil, err
		}
		return QuestionChanged{Question: *payload.Question}, nil
	case "vote":
		payload, err := decodePayload[votePayload](content)
		if err != nil {
			return nil, err
		}
		return VoteCast{Key: string(*payload.Key), Vote: voteValue(*payload.Vote)}, nil
	case "new_option":
		payload, err := decodePayload[newOptionPayload](content)
		if err != nil {
			return nil, err
		}
		return OptionAdded{Idx: string(*payload.Idx), Option: *payload.Option}, nil
	case "new_task":
		payload, err := decodePayload[newTaskPayload](content)
		if err != nil {
			return nil, err
		}
		return TaskAdded{
			Key:  string(*payload.Key),
			Task: *payload.Task,
			Desc: lo.FromPtr(payload.Desc),
		}, nil
	case "strike":
		payload, err := decodePayload[strikePayload](content)
		if err != nil {
			return nil, err
		}
		return TaskStruck{Key: string(*payload.Key)}, nil
	case "new_task_list_title":
		payload, err := decodePayload[titlePayload](content)
		if err != nil {
			return nil, err
		}
		return TitleChanged{Title: lo.FromPtr(payload.Title)}, nil
	}
	return Unrecognized{WidgetType: widgetType, Type: kind}, nil
}

func decodePollCreated(content string) (Envelope, error) {
	payload, err := decodePayload[pollCreatedPayload](content)
	if err != nil {
		return nil, err
	}
	return PollCreated{
		Question: *payload.ExtraData.Question,
		Options:  payload.ExtraData.Options,
	}, nil
}

func decodeTodoCreated(content string) (Envelope, error) {
	payload, err := decodePayload[todoCreatedPayload](content)
	if err != nil {
		return nil, err
	}
	if payload.ExtraData == nil {
		return TodoCreated{}, nil
	}
	list := TaskList{Title: lo.FromPtr(payload.ExtraData.TaskListTitle)}
	for _, task := range payload.ExtraData.Tasks {
		list.Tasks = append(list.Tasks, TaskSeed{Task: *task.Task, Desc: lo.FromPtr(task.Desc)})
	}
	return TodoCreated{List: &list}, nil
}

func decodePayload[T any](content string) (T, error) {
	var payload T
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", errors.ErrMalformedContent, err)
	}
	if err := validate.Struct(payload); err != nil {
		return payload, missingField(err)
	}
	return payload, nil
}

func missingField(err error) error {
	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		return fmt.Errorf("%w: %s", errors.ErrMissingField, fieldErrors[0].Namespace())
	}
	return fmt.Errorf("%w: %v", errors.ErrMissingField, err)
}

// discriminator returns the string value of a field, or "" when the field is
// absent or not a string.
func discriminator(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}

// voteValue keeps integral votes and maps everything else to 0.
func voteValue(vote float64) int {
	if vote != math.Trunc(vote) || math.Abs(vote) > math.MaxInt32 {
		return 0
	}
	return int(vote)
}
