package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The widget service speaks google.protobuf.Struct documents in both
// directions, so it is declared by hand instead of through protoc.
const (
	WidgetServiceName                             = "widget.v1.WidgetService"
	WidgetService_SubmitSubmessage_FullMethodName = "/" + WidgetServiceName + "/SubmitSubmessage"
	WidgetService_GetWidget_FullMethodName        = "/" + WidgetServiceName + "/GetWidget"
	WidgetService_ListMessages_FullMethodName     = "/" + WidgetServiceName + "/ListMessages"
)

type WidgetServiceServer interface {
	SubmitSubmessage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetWidget(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListMessages(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var WidgetService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: WidgetServiceName,
	HandlerType: (*WidgetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitSubmessage",
			Handler:    unaryHandler(WidgetService_SubmitSubmessage_FullMethodName, WidgetServiceServer.SubmitSubmessage),
		},
		{
			MethodName: "GetWidget",
			Handler:    unaryHandler(WidgetService_GetWidget_FullMethodName, WidgetServiceServer.GetWidget),
		},
		{
			MethodName: "ListMessages",
			Handler:    unaryHandler(WidgetService_ListMessages_FullMethodName, WidgetServiceServer.ListMessages),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "widget/v1/widget.proto",
}

func RegisterWidgetServiceServer(s grpc.ServiceRegistrar, srv WidgetServiceServer) {
	s.RegisterService(&WidgetService_ServiceDesc, srv)
}

type structMethod func(WidgetServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, method structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(WidgetServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return method(srv.(WidgetServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// WidgetServiceClient mirrors WidgetServiceServer over a client connection.
type WidgetServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWidgetServiceClient(cc grpc.ClientConnInterface) *WidgetServiceClient {
	return &WidgetServiceClient{cc: cc}
}

func (c *WidgetServiceClient) SubmitSubmessage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WidgetService_SubmitSubmessage_FullMethodName, in, opts...)
}

func (c *WidgetServiceClient) GetWidget(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WidgetService_GetWidget_FullMethodName, in, opts...)
}

func (c *WidgetServiceClient) ListMessages(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WidgetService_ListMessages_FullMethodName, in, opts...)
}

func (c *WidgetServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
