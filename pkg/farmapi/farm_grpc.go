// Package farmapi defines the farm.v1.FarmService gRPC contract.
//
// Messages are protobuf well-known types so the service needs no generated
// message code: farm ids travel as StringValue and farm status as Struct
// (see FarmStatus for the field names).
package farmapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "farm.v1.FarmService"

const (
	FarmService_ListFarms_FullMethodName       = "/farm.v1.FarmService/ListFarms"
	FarmService_GetFarmStatus_FullMethodName   = "/farm.v1.FarmService/GetFarmStatus"
	FarmService_WatchFarmStatus_FullMethodName = "/farm.v1.FarmService/WatchFarmStatus"
)

// FarmServiceClient is the client API for FarmService.
type FarmServiceClient interface {
	ListFarms(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	GetFarmStatus(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	WatchFarmStatus(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type farmServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFarmServiceClient(cc grpc.ClientConnInterface) FarmServiceClient {
	return &farmServiceClient{cc}
}

func (c *farmServiceClient) ListFarms(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FarmService_ListFarms_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *farmServiceClient) GetFarmStatus(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FarmService_GetFarmStatus_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *farmServiceClient) WatchFarmStatus(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &FarmService_ServiceDesc.Streams[0], FarmService_WatchFarmStatus_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[wrapperspb.StringValue, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// FarmServiceServer is the server API for FarmService.
type FarmServiceServer interface {
	// ListFarms returns one FarmStatus struct per dashboard card
	ListFarms(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	// GetFarmStatus returns the current FarmStatus of any farm id
	GetFarmStatus(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// WatchFarmStatus streams a farm's FarmStatus whenever it changes
	WatchFarmStatus(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error
}

// UnimplementedFarmServiceServer can be embedded to have forward compatible implementations.
type UnimplementedFarmServiceServer struct{}

func (UnimplementedFarmServiceServer) ListFarms(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ListFarms not implemented")
}

func (UnimplementedFarmServiceServer) GetFarmStatus(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetFarmStatus not implemented")
}

func (UnimplementedFarmServiceServer) WatchFarmStatus(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error {
	return status.Error(codes.Unimplemented, "method WatchFarmStatus not implemented")
}

func RegisterFarmServiceServer(s grpc.ServiceRegistrar, srv FarmServiceServer) {
	s.RegisterService(&FarmService_ServiceDesc, srv)
}

func _FarmService_ListFarms_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FarmServiceServer).ListFarms(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FarmService_ListFarms_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FarmServiceServer).ListFarms(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _FarmService_GetFarmStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FarmServiceServer).GetFarmStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FarmService_GetFarmStatus_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FarmServiceServer).GetFarmStatus(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _FarmService_WatchFarmStatus_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(FarmServiceServer).WatchFarmStatus(m, &grpc.GenericServerStream[wrapperspb.StringValue, structpb.Struct]{ServerStream: stream})
}

// FarmService_ServiceDesc is the grpc.ServiceDesc for FarmService.
var FarmService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FarmServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListFarms",
			Handler:    _FarmService_ListFarms_Handler,
		},
		{
			MethodName: "GetFarmStatus",
			Handler:    _FarmService_GetFarmStatus_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchFarmStatus",
			Handler:       _FarmService_WatchFarmStatus_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "farm/v1/farm.proto",
}
