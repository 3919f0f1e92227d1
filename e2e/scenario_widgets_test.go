package e2e

import (
	"context"
	"testing"
	"time"
	grpc2 "widget-lab/grpc"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type testWidgetsSuite struct {
	BaseGrpcSuite
}

func TestWidgetsSuite(t *testing.T) {
	suite.Run(t, &testWidgetsSuite{})
}

// messageID keeps scenarios apart when they run against a shared server.
func messageID() int64 {
	return time.Now().UnixNano() / int64(time.Microsecond)
}

func (s *testWidgetsSuite) submit(ctx context.Context, client *grpc2.WidgetServiceClient, messageID, senderID int64, content string) {
	in, err := grpc2.ToStruct(map[string]any{
		"message_id": messageID,
		"sender_id":  senderID,
		"msg_type":   "widget",
		"content":    content,
	})
	s.Require().NoError(err)
	resp, err := client.SubmitSubmessage(ctx, in)
	s.Require().NoError(err)
	s.Require().Equal(float64(messageID), resp.AsMap()["message_id"])
}

func (s *testWidgetsSuite) widget(ctx context.Context, client *grpc2.WidgetServiceClient, messageID int64) map[string]any {
	in, err := grpc2.ToStruct(map[string]any{"message_id": messageID})
	s.Require().NoError(err)
	resp, err := client.GetWidget(ctx, in)
	s.Require().NoError(err)
	return resp.AsMap()
}

func (s *testWidgetsSuite) TestPollLifecycle() {
	pollID := messageID()

	s.Run("Step 1: Create the poll and vote", func() {
		s.WithWidgets("Create poll with canned options", func(ctx context.Context, client *grpc2.WidgetServiceClient) {
			s.submit(ctx, client, pollID, 1, `{"widget_type":"poll","extra_data":{"question":"Q?","options":["A","B"]}}`)
			s.submit(ctx, client, pollID, 5, `{"type":"vote","key":"canned,0","vote":1}`)
			s.submit(ctx, client, pollID, 5, `{"type":"vote","key":"canned,0","vote":1}`)
		})
	})

	s.Run("Step 2: Votes are counted once", func() {
		s.WithWidgets("Read poll", func(ctx context.Context, client *grpc2.WidgetServiceClient) {
			got := s.widget(ctx, client, pollID)
			s.Require().Equal("poll", got["widget_type"])
			options := got["poll"].(map[string]any)["options"].(map[string]any)
			s.Require().Equal([]any{float64(5)}, options["canned,0"].(map[string]any)["votes"])
		})
	})

	s.Run("Step 3: Withdrawing a vote empties the option", func() {
		s.WithWidgets("Downvote and read", func(ctx context.Context, client *grpc2.WidgetServiceClient) {
			s.submit(ctx, client, pollID, 5, `{"type":"vote","key":"canned,0","vote":-1}`)
			got := s.widget(ctx, client, pollID)
			options := got["poll"].(map[string]any)["options"].(map[string]any)
			s.Require().Equal([]any{}, options["canned,0"].(map[string]any)["votes"])
		})
	})
}

func (s *testWidgetsSuite) TestTodoLifecycle() {
	todoID := messageID()

	s.WithWidgets("Create todo list and strike twice", func(ctx context.Context, client *grpc2.WidgetServiceClient) {
		s.submit(ctx, client, todoID, 1, `{"widget_type":"todo","extra_data":{"task_list_title":"","tasks":[{"task":"x"}]}}`)
		s.submit(ctx, client, todoID, 2, `{"type":"strike","key":"0,canned"}`)

		todo := s.widget(ctx, client, todoID)["todo"].(map[string]any)
		s.Require().Equal("Task list", todo["title"])
		task := todo["tasks"].(map[string]any)["0,canned"].(map[string]any)
		s.Require().Equal(true, task["completed"])

		s.submit(ctx, client, todoID, 2, `{"type":"strike","key":"0,canned"}`)
		todo = s.widget(ctx, client, todoID)["todo"].(map[string]any)
		task = todo["tasks"].(map[string]any)["0,canned"].(map[string]any)
		s.Require().Equal(false, task["completed"])
	})
}

func (s *testWidgetsSuite) TestRejectsIncompleteSubmessages() {
	s.WithWidgets("Submit without msg_type", func(ctx context.Context, client *grpc2.WidgetServiceClient) {
		in, err := structpb.NewStruct(map[string]any{"message_id": 1, "sender_id": 1})
		s.Require().NoError(err)

		_, err = client.SubmitSubmessage(ctx, in)

		s.Require().Equal(codes.InvalidArgument, status.Code(err))
	})
}
