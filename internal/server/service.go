package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "shelfkey.v1.ShelfKeyService"

// Full method names.
const (
	MethodComputeKeys  = "/" + ServiceName + "/ComputeKeys"
	MethodIndexRecord  = "/" + ServiceName + "/IndexRecord"
	MethodRemoveRecord = "/" + ServiceName + "/RemoveRecord"
	MethodBrowse       = "/" + ServiceName + "/Browse"
	MethodHealth       = "/" + ServiceName + "/Health"
	MethodStats        = "/" + ServiceName + "/Stats"
)

// ShelfKeyServiceServer is the server API. Every message is a
// google.protobuf.Struct holding the JSON form of the matching Go type in
// messages.go.
type ShelfKeyServiceServer interface {
	ComputeKeys(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IndexRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Browse(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Health(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Stats(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(ShelfKeyServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ShelfKeyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ShelfKeyServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes ShelfKeyService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShelfKeyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ComputeKeys", Handler: unaryHandler(MethodComputeKeys, ShelfKeyServiceServer.ComputeKeys)},
		{MethodName: "IndexRecord", Handler: unaryHandler(MethodIndexRecord, ShelfKeyServiceServer.IndexRecord)},
		{MethodName: "RemoveRecord", Handler: unaryHandler(MethodRemoveRecord, ShelfKeyServiceServer.RemoveRecord)},
		{MethodName: "Browse", Handler: unaryHandler(MethodBrowse, ShelfKeyServiceServer.Browse)},
		{MethodName: "Health", Handler: unaryHandler(MethodHealth, ShelfKeyServiceServer.Health)},
		{MethodName: "Stats", Handler: unaryHandler(MethodStats, ShelfKeyServiceServer.Stats)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shelfkey/v1/shelfkey.proto",
}

// RegisterShelfKeyServiceServer registers srv with s.
func RegisterShelfKeyServiceServer(s grpc.ServiceRegistrar, srv ShelfKeyServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
