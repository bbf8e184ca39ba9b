package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "rpgdungeon.api.v1alpha1.DungeonService"

// Full method names
const (
	GenerateDungeonFullMethodName = "/" + ServiceName + "/GenerateDungeon"
	GetLayoutFullMethodName       = "/" + ServiceName + "/GetLayout"
	ListLayoutsFullMethodName     = "/" + ServiceName + "/ListLayouts"
	DeleteLayoutFullMethodName    = "/" + ServiceName + "/DeleteLayout"
)

// DungeonServiceServer is the server API for the dungeon service.
// Requests and responses are JSON objects carried as google.protobuf.Struct.
type DungeonServiceServer interface {
	GenerateDungeon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetLayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListLayouts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteLayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterDungeonServiceServer registers srv on s
func RegisterDungeonServiceServer(s grpc.ServiceRegistrar, srv DungeonServiceServer) {
	s.RegisterService(&DungeonServiceDesc, srv)
}

type unaryMethod func(srv DungeonServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DungeonServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DungeonServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DungeonServiceDesc is the grpc.ServiceDesc for the dungeon service
var DungeonServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DungeonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateDungeon",
			Handler:    unaryHandler(GenerateDungeonFullMethodName, DungeonServiceServer.GenerateDungeon),
		},
		{
			MethodName: "GetLayout",
			Handler:    unaryHandler(GetLayoutFullMethodName, DungeonServiceServer.GetLayout),
		},
		{
			MethodName: "ListLayouts",
			Handler:    unaryHandler(ListLayoutsFullMethodName, DungeonServiceServer.ListLayouts),
		},
		{
			MethodName: "DeleteLayout",
			Handler:    unaryHandler(DeleteLayoutFullMethodName, DungeonServiceServer.DeleteLayout),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgdungeon/api/v1alpha1/dungeon.proto",
}

// DungeonServiceClient is the client API for the dungeon service
type DungeonServiceClient interface {
	GenerateDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetLayout(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListLayouts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteLayout(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type dungeonServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDungeonServiceClient creates a client over cc
func NewDungeonServiceClient(cc grpc.ClientConnInterface) DungeonServiceClient {
	return &dungeonServiceClient{cc: cc}
}

func (c *dungeonServiceClient) invoke(
	ctx context.Context,
	method string,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dungeonServiceClient) GenerateDungeon(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GenerateDungeonFullMethodName, in, opts...)
}

func (c *dungeonServiceClient) GetLayout(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GetLayoutFullMethodName, in, opts...)
}

func (c *dungeonServiceClient) ListLayouts(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, ListLayoutsFullMethodName, in, opts...)
}

func (c *dungeonServiceClient) DeleteLayout(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, DeleteLayoutFullMethodName, in, opts...)
}
