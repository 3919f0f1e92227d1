package grpc

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"widget-lab/errors"
	"widget-lab/services"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type WidgetServer struct {
	service services.IWidgetService
	log     *slog.Logger
}

func NewWidgetServer(log *slog.Logger, service services.IWidgetService) *WidgetServer {
	return &WidgetServer{service: service, log: log}
}

type getWidgetRequest struct {
	MessageID int64 `json:"message_id"`
}

type submitResponse struct {
	ID        int64 `json:"id"`
	MessageID int64 `json:"message_id"`
}

type widgetResponse struct {
	services.Widget
	SkippedCount int `json:"skipped"`
}

type listMessagesResponse struct {
	MessageIDs []int64 `json:"message_ids"`
}

// SubmitSubmessage appends one event to a message's widget history.
// The widget is not folded here; readers call GetWidget.
func (s *WidgetServer) SubmitSubmessage(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var request services.SubmitRequest
	if err := FromStruct(req, &request); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	stored, err := s.service.Submit(request)
	if err != nil {
		return nil, toStatus(err)
	}
	return ToStruct(submitResponse{ID: stored.ID, MessageID: stored.MessageID})
}

func (s *WidgetServer) GetWidget(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var request getWidgetRequest
	if err := FromStruct(req, &request); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if request.MessageID <= 0 || request.MessageID > services.MaxID {
		return nil, status.Errorf(codes.InvalidArgument, "message_id must be between 1 and %d", services.MaxID)
	}

	result, err := s.service.GetWidget(request.MessageID)
	if err != nil {
		return nil, toStatus(err)
	}
	return ToStruct(widgetResponse{Widget: result, SkippedCount: len(result.Skipped)})
}

func (s *WidgetServer) ListMessages(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	messageIDs, err := s.service.ListMessageIDs()
	if err != nil {
		return nil, toStatus(err)
	}
	if messageIDs == nil {
		messageIDs = []int64{}
	}
	return ToStruct(listMessagesResponse{MessageIDs: messageIDs})
}

func toStatus(err error) error {
	if stderrors.Is(err, errors.ErrInvalidSubmessage) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// ToStruct converts any JSON-marshalable value into a Struct message.
func ToStruct(v any) (*structpb.Struct, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal struct: %w", err)
	}
	out := new(structpb.Struct)
	if err = protojson.Unmarshal(bytes, out); err != nil {
		return nil, fmt.Errorf("convert struct: %w", err)
	}
	return out, nil
}

// FromStruct decodes a Struct message into v through its JSON form.
func FromStruct(in *structpb.Struct, v any) error {
	bytes, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("convert struct: %w", err)
	}
	return json.Unmarshal(bytes, v)
}
