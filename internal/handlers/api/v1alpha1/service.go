package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "inventory.api.v1alpha1.InventoryService"

// Method names
const (
	MethodApplyCommands     = "ApplyCommands"
	MethodInvokeTool        = "InvokeTool"
	MethodGetState          = "GetState"
	MethodRenderState       = "RenderState"
	MethodSetInventory      = "SetInventory"
	MethodResetConversation = "ResetConversation"
)

// FullMethod returns the path used on the wire for a method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// InventoryServiceServer is the server API for the inventory service. Requests and
// responses are JSON objects carried as google.protobuf.Struct.
type InventoryServiceServer interface {
	ApplyCommands(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InvokeTool(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RenderState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetInventory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetConversation(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterInventoryServiceServer registers srv on s
func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryServiceDesc, srv)
}

type unaryMethod func(InventoryServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodHandler(method string, call unaryMethod) grpc.MethodHandler {
	fullMethod := FullMethod(method)
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(InventoryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(InventoryServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// InventoryServiceDesc describes the inventory service for grpc.Server
var InventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodApplyCommands, Handler: methodHandler(MethodApplyCommands, InventoryServiceServer.ApplyCommands)},
		{MethodName: MethodInvokeTool, Handler: methodHandler(MethodInvokeTool, InventoryServiceServer.InvokeTool)},
		{MethodName: MethodGetState, Handler: methodHandler(MethodGetState, InventoryServiceServer.GetState)},
		{MethodName: MethodRenderState, Handler: methodHandler(MethodRenderState, InventoryServiceServer.RenderState)},
		{MethodName: MethodSetInventory, Handler: methodHandler(MethodSetInventory, InventoryServiceServer.SetInventory)},
		{MethodName: MethodResetConversation, Handler: methodHandler(MethodResetConversation, InventoryServiceServer.ResetConversation)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "inventory/api/v1alpha1/inventory.proto",
}

// InventoryServiceClient is the client API for the inventory service
type InventoryServiceClient interface {
	ApplyCommands(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	InvokeTool(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RenderState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetInventory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ResetConversation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type inventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewInventoryServiceClient creates a client on cc
func NewInventoryServiceClient(cc grpc.ClientConnInterface) InventoryServiceClient {
	return &inventoryServiceClient{cc: cc}
}

func (c *inventoryServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *inventoryServiceClient) ApplyCommands(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodApplyCommands, in, opts)
}

func (c *inventoryServiceClient) InvokeTool(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodInvokeTool, in, opts)
}

func (c *inventoryServiceClient) GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetState, in, opts)
}

func (c *inventoryServiceClient) RenderState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRenderState, in, opts)
}

func (c *inventoryServiceClient) SetInventory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSetInventory, in, opts)
}

func (c *inventoryServiceClient) ResetConversation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodResetConversation, in, opts)
}
