package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"
	grpc2 "widget-lab/grpc"
	"widget-lab/repositories"
	"widget-lab/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config

	listener *bufconn.Listener
	server   *grpc.Server
	cleanup  []func()
}

// SetupSuite loads the environment configuration and, without WIDGET_ADDR,
// boots an in-process server backed by a temporary Badger store.
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.WidgetAddr != "" {
		return
	}

	log := logs.GetLoggerFromLevel(slog.LevelWarn)
	db, err := badger.Open(badger.DefaultOptions(s.T().TempDir()).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	repository := repositories.NewSubmessageRepository(db, log)

	s.listener = bufconn.Listen(1 << 20)
	s.server = grpc.NewServer(grpc.UnaryInterceptor(grpc2.LoggingInterceptor(log)))
	grpc2.RegisterWidgetServiceServer(s.server, grpc2.NewWidgetServer(log, services.NewWidgetService(log, repository)))
	go func() { _ = s.server.Serve(s.listener) }()

	s.cleanup = append(s.cleanup,
		s.server.Stop,
		func() { _ = repository.Close() },
		func() { _ = db.Close() },
	)
}

func (s *BaseGrpcSuite) TearDownSuite() {
	for _, fn := range s.cleanup {
		fn()
	}
}

// GrpcConn initializes a gRPC connection with logging, colors, and JSON debugging
func (s *BaseGrpcSuite) GrpcConn(t *testing.T, name string) *grpc.ClientConn {
	// 1. Print a colorized header for the connection step in logs
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	// 2. Setup JSON marshaler for debugging protobuf messages
	marshaler := protojson.MarshalOptions{
		UseProtoNames:   true,
		Multiline:       true,
		EmitUnpopulated: true,
	}

	options := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))

			// Log full JSON request/response bodies if E2E_DEBUG_JSON is enabled
			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, marshaler.Format(req.(proto.Message)))
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, marshaler.Format(reply.(proto.Message)))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	}

	addr := s.Config.WidgetAddr
	if addr == "" {
		addr = "passthrough:///bufnet"
		options = append(options, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.listener.DialContext(ctx)
		}))
	}

	conn, err := grpc.NewClient(addr, options...)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+addr)
	return conn
}

// WithWidgets provides a WidgetService client within a contextual test step
func (s *BaseGrpcSuite) WithWidgets(name string, fn func(ctx context.Context, client *grpc2.WidgetServiceClient)) {
	conn := s.GrpcConn(s.T(), name)
	defer conn.Close()

	client := grpc2.NewWidgetServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fn(ctx, client)
}
