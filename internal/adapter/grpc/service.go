package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "propertydex.v1.ReturnEngineService"

// ReturnEngineServiceServer is the server API for the return engine.
// Every message is a google.protobuf.Struct; field names follow the JSON names of the domain types.
type ReturnEngineServiceServer interface {
	CalculateIRR(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CalculateLTV(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CalculateWACC(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Project(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateScenario(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetScenario(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListScenarios(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SimulateScenario(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RenderReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(ReturnEngineServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ReturnEngineServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ReturnEngineServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ReturnEngineService_ServiceDesc is the grpc.ServiceDesc for ReturnEngineService
var ReturnEngineService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReturnEngineServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc("CalculateIRR", ReturnEngineServiceServer.CalculateIRR),
		methodDesc("CalculateLTV", ReturnEngineServiceServer.CalculateLTV),
		methodDesc("CalculateWACC", ReturnEngineServiceServer.CalculateWACC),
		methodDesc("Project", ReturnEngineServiceServer.Project),
		methodDesc("CreateScenario", ReturnEngineServiceServer.CreateScenario),
		methodDesc("GetScenario", ReturnEngineServiceServer.GetScenario),
		methodDesc("ListScenarios", ReturnEngineServiceServer.ListScenarios),
		methodDesc("SimulateScenario", ReturnEngineServiceServer.SimulateScenario),
		methodDesc("RenderReport", ReturnEngineServiceServer.RenderReport),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

// RegisterReturnEngineServiceServer registers srv on the given registrar
func RegisterReturnEngineServiceServer(s grpc.ServiceRegistrar, srv ReturnEngineServiceServer) {
	s.RegisterService(&ReturnEngineService_ServiceDesc, srv)
}

// ReturnEngineClient is a thin client for ReturnEngineService
type ReturnEngineClient struct {
	cc grpc.ClientConnInterface
}

// NewReturnEngineClient creates a client on top of an existing connection
func NewReturnEngineClient(cc grpc.ClientConnInterface) *ReturnEngineClient {
	return &ReturnEngineClient{cc: cc}
}

// Call invokes a unary method by its short name (e.g. "CalculateIRR")
func (c *ReturnEngineClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CallMap is Call with plain Go maps on both sides
func (c *ReturnEngineClient) CallMap(ctx context.Context, method string, in map[string]any, opts ...grpc.CallOption) (map[string]any, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out, err := c.Call(ctx, method, req, opts...)
	if err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
