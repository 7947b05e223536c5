// Package flakev1 declares the flake.v1.IdService gRPC contract. Messages
// are protobuf well-known types, so no generated code is involved:
//
//	service IdService {
//	  rpc NextId(google.protobuf.Empty) returns (google.protobuf.UInt64Value);
//	  rpc NextIds(google.protobuf.UInt32Value) returns (google.protobuf.ListValue);
//	  rpc Decode(google.protobuf.UInt64Value) returns (google.protobuf.Struct);
//	}
//
// NextIds returns ids as decimal strings inside the ListValue, since
// ListValue numbers are doubles.
package flakev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	IDServiceName          = "flake.v1.IdService"
	IDServiceNextIDMethod  = "/flake.v1.IdService/NextId"
	IDServiceNextIDsMethod = "/flake.v1.IdService/NextIds"
	IDServiceDecodeMethod  = "/flake.v1.IdService/Decode"
)

// IDServiceServer is the server API for flake.v1.IdService.
type IDServiceServer interface {
	NextID(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	NextIDs(context.Context, *wrapperspb.UInt32Value) (*structpb.ListValue, error)
	Decode(context.Context, *wrapperspb.UInt64Value) (*structpb.Struct, error)
}

// RegisterIDServiceServer registers srv on s.
func RegisterIDServiceServer(s grpc.ServiceRegistrar, srv IDServiceServer) {
	s.RegisterService(&IDServiceDesc, srv)
}

// IDServiceDesc is the grpc.ServiceDesc for flake.v1.IdService.
var IDServiceDesc = grpc.ServiceDesc{
	ServiceName: IDServiceName,
	HandlerType: (*IDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NextId", Handler: nextIDHandler},
		{MethodName: "NextIds", Handler: nextIDsHandler},
		{MethodName: "Decode", Handler: decodeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flake/v1/ids.proto",
}

func nextIDHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).NextID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDServiceNextIDMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDServiceServer).NextID(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func nextIDsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).NextIDs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDServiceNextIDsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDServiceServer).NextIDs(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func decodeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).Decode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDServiceDecodeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDServiceServer).Decode(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// IDServiceClient is the client API for flake.v1.IdService.
type IDServiceClient interface {
	NextID(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	NextIDs(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Decode(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type idServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewIDServiceClient returns a client over cc.
func NewIDServiceClient(cc grpc.ClientConnInterface) IDServiceClient {
	return &idServiceClient{cc: cc}
}

func (c *idServiceClient) NextID(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, IDServiceNextIDMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idServiceClient) NextIDs(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, IDServiceNextIDsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idServiceClient) Decode(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IDServiceDecodeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
