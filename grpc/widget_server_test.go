package grpc

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"widget-lab/repositories"
	"widget-lab/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func newTestClient(t *testing.T) *WidgetServiceClient {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })
	repository := repositories.NewSubmessageRepository(db, log)
	t.Cleanup(func() { _ = repository.Close() })

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(log)))
	RegisterWidgetServiceServer(server, NewWidgetServer(log, services.NewWidgetService(log, repository)))
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	req.NoError(err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewWidgetServiceClient(conn)
}

func submit(t *testing.T, client *WidgetServiceClient, messageID, senderID int64, content string) {
	in, err := ToStruct(map[string]any{
		"message_id": messageID,
		"sender_id":  senderID,
		"msg_type":   "widget",
		"content":    content,
	})
	require.NoError(t, err)
	_, err = client.SubmitSubmessage(context.Background(), in)
	require.NoError(t, err)
}

func getWidget(t *testing.T, client *WidgetServiceClient, messageID int64) map[string]any {
	in, err := ToStruct(map[string]any{"message_id": messageID})
	require.NoError(t, err)
	out, err := client.GetWidget(context.Background(), in)
	require.NoError(t, err)
	return out.AsMap()
}

func TestWidgetServer_Poll(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t)

	submit(t, client, 10, 1, `{"widget_type":"poll","extra_data":{"question":"Lunch?","options":["Pizza","Sushi"]}}`)
	submit(t, client, 10, 5, `{"type":"vote","key":"canned,0","vote":1}`)
	submit(t, client, 10, 6, `{"type":"new_option","idx":1,"option":"Tacos"}`)
	submit(t, client, 10, 5, `{"type":"vote","key":"6,1","vote":1}`)
	submit(t, client, 10, 5, `garbage`)

	got := getWidget(t, client, 10)

	req.Equal("poll", got["widget_type"])
	req.Equal(float64(10), got["message_id"])
	req.Equal(float64(1), got["skipped"])
	req.NotContains(got, "todo")
	poll := got["poll"].(map[string]any)
	req.Equal("Lunch?", poll["question"])
	options := poll["options"].(map[string]any)
	req.Len(options, 3)
	req.Equal(map[string]any{"option": "Pizza", "votes": []any{float64(5)}}, options["canned,0"])
	req.Equal(map[string]any{"option": "Sushi", "votes": []any{}}, options["canned,1"])
	req.Equal(map[string]any{"option": "Tacos", "votes": []any{float64(5)}}, options["6,1"])
}

func TestWidgetServer_Todo(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t)

	submit(t, client, 20, 1, `{"widget_type":"todo","extra_data":{"task_list_title":"","tasks":[{"task":"Dishes"}]}}`)
	submit(t, client, 20, 3, `{"type":"new_task","key":99,"task":"Bins","desc":"Tuesday"}`)
	submit(t, client, 20, 3, `{"type":"strike","key":"99,3"}`)

	got := getWidget(t, client, 20)

	req.Equal("todo", got["widget_type"])
	todo := got["todo"].(map[string]any)
	req.Equal("Task list", todo["title"])
	req.Equal(map[string]any{
		"0,canned": map[string]any{"task": "Dishes", "desc": "", "completed": false},
		"99,3":     map[string]any{"task": "Bins", "desc": "Tuesday", "completed": true},
	}, todo["tasks"])
}

func TestWidgetServer_UnknownMessage(t *testing.T) {
	client := newTestClient(t)

	got := getWidget(t, client, 30)

	require.Equal(t, "unknown", got["widget_type"])
	require.NotContains(t, got, "poll")
}

func TestWidgetServer_ListMessages(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t)

	out, err := client.ListMessages(context.Background(), &structpb.Struct{})
	req.NoError(err)
	req.Equal([]any{}, out.AsMap()["message_ids"])

	submit(t, client, 7, 1, `{"widget_type":"poll","extra_data":{"question":"Q?"}}`)
	submit(t, client, 3, 1, `{"widget_type":"todo"}`)

	out, err = client.ListMessages(context.Background(), &structpb.Struct{})
	req.NoError(err)
	req.Equal([]any{float64(3), float64(7)}, out.AsMap()["message_ids"])
}

func TestWidgetServer_InvalidArguments(t *testing.T) {
	client := newTestClient(t)

	t.Run("should reject a submessage without sender", func(t *testing.T) {
		in, err := ToStruct(map[string]any{"message_id": 1, "msg_type": "widget", "content": "{}"})
		require.NoError(t, err)

		_, err = client.SubmitSubmessage(context.Background(), in)

		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("should reject a fractional message id", func(t *testing.T) {
		in, err := ToStruct(map[string]any{"message_id": 1.5})
		require.NoError(t, err)

		_, err = client.GetWidget(context.Background(), in)

		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("should reject ids a JSON number cannot carry", func(t *testing.T) {
		for _, field := range []string{"message_id", "sender_id"} {
			request := map[string]any{"message_id": 1, "sender_id": 1, "msg_type": "widget", "content": "{}"}
			request[field] = int64(9007199254740993)
			in, err := ToStruct(request)
			require.NoError(t, err)

			_, err = client.SubmitSubmessage(context.Background(), in)

			require.Equal(t, codes.InvalidArgument, status.Code(err), field)
		}

		in, err := ToStruct(map[string]any{"message_id": int64(9007199254740993)})
		require.NoError(t, err)
		_, err = client.GetWidget(context.Background(), in)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("should accept the largest exact id", func(t *testing.T) {
		submit(t, client, services.MaxID, services.MaxID, `{"widget_type":"poll","extra_data":{"question":"Q?"}}`)

		got := getWidget(t, client, services.MaxID)

		require.Equal(t, "poll", got["widget_type"])
	})

	t.Run("should reject a missing message id", func(t *testing.T) {
		_, err := client.GetWidget(context.Background(), &structpb.Struct{})

		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}
