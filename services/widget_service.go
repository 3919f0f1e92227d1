package services

import (
	"fmt"
	"log/slog"
	"time"
	"widget-lab/domain/widget"
	"widget-lab/errors"
	"widget-lab/projection"
	"widget-lab/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type IWidgetService interface {
	Submit(request SubmitRequest) (widget.Submessage, error)
	GetWidget(messageID int64) (Widget, error)
	ListMessageIDs() ([]int64, error)
}

// MaxID is the largest id a JSON number carries without rounding.
const MaxID = 1<<53 - 1

// SubmitRequest is a submessage as sent by a client, before it gets an id.
type SubmitRequest struct {
	MessageID int64  `json:"message_id" validate:"required,gt=0,lte=9007199254740991"`
	SenderID  int64  `json:"sender_id" validate:"required,gt=0,lte=9007199254740991"`
	MsgType   string `json:"msg_type" validate:"required"`
	Content   any    `json:"content"`
}

// Widget is the snapshot of the widget attached to a message.
// At most one of Poll and Todo is set, according to Type.
type Widget struct {
	MessageID int64                  `json:"message_id"`
	Type      widget.Type            `json:"widget_type"`
	Poll      *projection.PollWidget `json:"poll,omitempty"`
	Todo      *projection.TodoWidget `json:"todo,omitempty"`
	Skipped   []projection.Skipped   `json:"-"`
}

type WidgetService struct {
	repository repositories.ISubmessageRepository
	log        *slog.Logger
	now        func() time.Time
}

func NewWidgetService(log *slog.Logger, repository repositories.ISubmessageRepository) *WidgetService {
	return &WidgetService{
		repository: repository,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and appends a submessage to its message.
// Content is stored as received: a malformed widget event is still part of
// the history and is only skipped when folding.
func (s *WidgetService) Submit(request SubmitRequest) (widget.Submessage, error) {
	if err := validate.Struct(request); err != nil {
		return widget.Submessage{}, fmt.Errorf("%w: %v", errors.ErrInvalidSubmessage, err)
	}

	stored, err := s.repository.StoreSubmessage(repositories.DiskSubmessage{
		MessageID: request.MessageID,
		SenderID:  request.SenderID,
		MsgType:   request.MsgType,
		Content:   request.Content,
		At:        s.now(),
	})
	if err != nil {
		s.log.Error("Failed to store submessage", "message_id", request.MessageID, "error", err)
		return widget.Submessage{}, fmt.Errorf("store submessage: %w", err)
	}
	return toSubmessage(stored, 0), nil
}

// GetWidget replays every submessage of a message into a fresh snapshot.
// A message whose first submessage declares no known widget yields a Widget
// of type unknown and no error.
func (s *WidgetService) GetWidget(messageID int64) (Widget, error) {
	diskSubmessages, err := s.repository.GetSubmessages(messageID)
	if err != nil {
		s.log.Error("Failed to load submessages", "message_id", messageID, "error", err)
		return Widget{}, fmt.Errorf("load submessages: %w", err)
	}
	submessages := lo.Map(diskSubmessages, toSubmessage)

	result := Widget{MessageID: messageID, Type: widget.FindType(submessages)}
	switch result.Type {
	case widget.TypePoll:
		poll, skipped := projection.ReducePoll(submessages)
		result.Poll, result.Skipped = &poll, skipped
	case widget.TypeTodo:
		todo, skipped := projection.ReduceTodo(submessages)
		result.Todo, result.Skipped = &todo, skipped
	default:
		s.log.Debug(errors.ErrUnknownWidgetType.Error(),
			"message_id", messageID,
			"widget_type", result.Type,
			"submessages", len(submessages))
	}

	for _, skip := range result.Skipped {
		s.log.Debug("Skipped widget event",
			"message_id", messageID,
			"submessage_id", submessages[skip.Index].ID,
			"error", skip.Err)
	}
	return result, nil
}

func (s *WidgetService) ListMessageIDs() ([]int64, error) {
	return s.repository.ListMessageIDs()
}

func toSubmessage(item repositories.DiskSubmessage, _ int) widget.Submessage {
	return widget.Submessage{
		ID:        item.ID,
		MessageID: item.MessageID,
		SenderID:  item.SenderID,
		MsgType:   item.MsgType,
		Content:   item.Content,
	}
}
