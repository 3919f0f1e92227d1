package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	grpc2 "widget-lab/grpc"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string        `env:"WIDGET_SERVER_ADDR,default=localhost:8080"`
	Timeout       time.Duration `env:"WIDGET_CLIENT_TIMEOUT,default=10s"`
	LogLevel      string        `env:"LOG_LEVEL,default=INFO"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run prints the widget of one message, or the list of messages holding a
// widget when no message id is given.
func run() (int, error) {
	messageID := flag.Int64("message", 0, "message id whose widget is printed")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	conn, err := grpc.NewClient(config.ServerAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() {
		log.Debug("Closing connection...")
		_ = conn.Close()
	}()
	client := grpc2.NewWidgetServiceClient(conn)

	var out *structpb.Struct
	if *messageID == 0 {
		out, err = client.ListMessages(ctx, &structpb.Struct{})
	} else {
		var in *structpb.Struct
		if in, err = grpc2.ToStruct(map[string]any{"message_id": *messageID}); err != nil {
			return exitRuntime, err
		}
		out, err = client.GetWidget(ctx, in)
	}
	if err != nil {
		return exitRuntime, err
	}

	marshaler := protojson.MarshalOptions{Multiline: true, Indent: "  "}
	fmt.Println(marshaler.Format(out))
	return exitOK, nil
}
