package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "item.v1.ItemService"

// ItemServiceServer - методы сервиса; сообщения передаются как google.protobuf.Struct
// с теми же JSON полями, что и в HTTP API.
type ItemServiceServer interface {
	CreateItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	BulkDeleteItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListCategories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(s ItemServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// FullMethod возвращает полное имя метода для вызова через grpc.ClientConn.Invoke
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ItemServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ItemServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ItemServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ItemServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateItem", ItemServiceServer.CreateItem),
		unary("GetItem", ItemServiceServer.GetItem),
		unary("UpdateItem", ItemServiceServer.UpdateItem),
		unary("DeleteItem", ItemServiceServer.DeleteItem),
		unary("BulkDeleteItems", ItemServiceServer.BulkDeleteItems),
		unary("ListItems", ItemServiceServer.ListItems),
		unary("ListCategories", ItemServiceServer.ListCategories),
		unary("GetStats", ItemServiceServer.GetStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "item/v1/item.proto",
}
