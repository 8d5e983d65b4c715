package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName full gRPC service name
const ServiceName = "portfolio.PortfolioService"

// PortfolioServiceServer server API of the portfolio service, every message is a google.protobuf.Struct
type PortfolioServiceServer interface {
	SettleTrade(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlaceOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Deposit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Withdraw(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCapital(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAvailable(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPositions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPortfolioSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTransactions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRealizedPnL(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AssessRisk(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetStopLossRecommendations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Watch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Optimize(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reconcile(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(PortfolioServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error,
			interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PortfolioServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(PortfolioServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// PortfolioServiceDesc grpc.ServiceDesc of the portfolio service
var PortfolioServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PortfolioServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc("SettleTrade", PortfolioServiceServer.SettleTrade),
		methodDesc("PlaceOrder", PortfolioServiceServer.PlaceOrder),
		methodDesc("Deposit", PortfolioServiceServer.Deposit),
		methodDesc("Withdraw", PortfolioServiceServer.Withdraw),
		methodDesc("GetCapital", PortfolioServiceServer.GetCapital),
		methodDesc("GetAvailable", PortfolioServiceServer.GetAvailable),
		methodDesc("GetPositions", PortfolioServiceServer.GetPositions),
		methodDesc("GetPortfolioSummary", PortfolioServiceServer.GetPortfolioSummary),
		methodDesc("GetTransactions", PortfolioServiceServer.GetTransactions),
		methodDesc("GetRealizedPnL", PortfolioServiceServer.GetRealizedPnL),
		methodDesc("AssessRisk", PortfolioServiceServer.AssessRisk),
		methodDesc("GetStopLossRecommendations", PortfolioServiceServer.GetStopLossRecommendations),
		methodDesc("Watch", PortfolioServiceServer.Watch),
		methodDesc("Optimize", PortfolioServiceServer.Optimize),
		methodDesc("Reconcile", PortfolioServiceServer.Reconcile),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "portfolio.proto",
}

// RegisterPortfolioServiceServer register srv on s
func RegisterPortfolioServiceServer(s grpc.ServiceRegistrar, srv PortfolioServiceServer) {
	s.RegisterService(&PortfolioServiceDesc, srv)
}

// PortfolioServiceClient thin client invoking service methods by name
type PortfolioServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPortfolioServiceClient constructor
func NewPortfolioServiceClient(cc grpc.ClientConnInterface) *PortfolioServiceClient {
	return &PortfolioServiceClient{cc: cc}
}

// Call invoke method with in
func (c *PortfolioServiceClient) Call(ctx context.Context, method string, in *structpb.Struct,
	opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
