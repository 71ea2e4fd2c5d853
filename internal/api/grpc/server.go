package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net"

	"github.com/St1cky1/item-service/internal/entity"
	"github.com/St1cky1/item-service/internal/usecase"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCServer struct {
	itemService *usecase.ItemService
	server      *grpc.Server
}

var _ ItemServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(itemService *usecase.ItemService) *GRPCServer {
	s := &GRPCServer{
		itemService: itemService,
	}
	s.server = grpc.NewServer(
		grpc.ChainUnaryInterceptor(recoveryInterceptor, s.unaryInterceptor),
	)
	s.server.RegisterService(&ItemServiceDesc, s)
	reflection.Register(s.server)
	return s
}

func (s *GRPCServer) Start(port string) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	log.Printf("gRPC server listening on :%s", port)
	return s.Serve(lis)
}

func (s *GRPCServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

func (s *GRPCServer) Stop() {
	s.server.GracefulStop()
}

func (s *GRPCServer) unaryInterceptor(ctx context.Context, req any,
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	log.Printf("gRPC method: %s", info.FullMethod)
	return handler(usecase.WithSource(ctx, entity.SourceGRPC), req)
}

// recoveryInterceptor превращает панику обработчика в codes.Internal вместо падения процесса
func recoveryInterceptor(ctx context.Context, req any,
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ panic in %s: %v", info.FullMethod, r)
			err = status.Error(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

// CreateItem - создание элемента
func (s *GRPCServer) CreateItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var createReq entity.CreateItemRequest
	if err := fromStruct(req, &createReq); err != nil {
		return nil, err
	}

	item, err := s.itemService.CreateItem(ctx, &createReq)
	if err != nil {
		return nil, toStatus(err)
	}

	return toStruct(item)
}

// GetItem - получение элемента, {"id": ...}
func (s *GRPCServer) GetItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	item, err := s.itemService.GetItem(ctx, idFrom(req))
	if err != nil {
		return nil, toStatus(err)
	}

	return toStruct(item)
}

// UpdateItem - частичное обновление, {"id": ..., поля...}
func (s *GRPCServer) UpdateItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var updateReq entity.UpdateItemRequest
	if err := fromStruct(req, &updateReq); err != nil {
		return nil, err
	}

	item, err := s.itemService.UpdateItem(ctx, idFrom(req), &updateReq)
	if err != nil {
		return nil, toStatus(err)
	}

	return toStruct(item)
}

// DeleteItem - удаление элемента
func (s *GRPCServer) DeleteItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	item, err := s.itemService.DeleteItem(ctx, idFrom(req))
	if err != nil {
		return nil, toStatus(err)
	}

	return toStruct(item)
}

// BulkDeleteItems - {"ids": [...]}
func (s *GRPCServer) BulkDeleteItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ids := req.GetFields()["ids"].GetListValue().AsSlice()
	if len(ids) == 0 {
		return nil, status.Error(codes.InvalidArgument, "ids must be a non-empty list")
	}

	result, err := s.itemService.BulkDeleteItems(ctx, ids)
	if err != nil {
		return nil, toStatus(err)
	}

	return toStruct(result)
}

// ListItems - {"category", "search", "page", "limit"}
func (s *GRPCServer) ListItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	page, err := s.itemService.ListItems(ctx, entity.ListItemsQuery{
		Category: fields["category"].GetStringValue(),
		Search:   fields["search"].GetStringValue(),
		Page:     toInt(fields["page"].GetNumberValue()),
		Limit:    toInt(fields["limit"].GetNumberValue()),
	})
	if err != nil {
		return nil, toStatus(err)
	}

	return toStruct(page)
}

func (s *GRPCServer) ListCategories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(map[string]any{"categories": s.itemService.ListCategories()})
}

func (s *GRPCServer) GetStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	stats, err := s.itemService.GetStats(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return toStruct(stats)
}

func idFrom(req *structpb.Struct) any {
	v, ok := req.GetFields()["id"]
	if !ok {
		return nil
	}
	return v.AsInterface()
}

// fromStruct раскладывает Struct в запрос через JSON, как в HTTP API
func fromStruct(req *structpb.Struct, dst any) error {
	data, err := protojson.Marshal(req)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return status.Error(codes.InvalidArgument, "invalid request: "+err.Error())
	}
	return nil
}

func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func toStatus(err error) error {
	var verr *entity.ValidationError
	var nf *entity.NotFoundError

	switch {
	case errors.As(err, &verr):
		st := status.New(codes.InvalidArgument, "validation failed")
		details, detailErr := structpb.NewStruct(map[string]any{"violations": toAnySlice(verr.Violations)})
		if detailErr == nil {
			if withDetails, e := st.WithDetails(details); e == nil {
				st = withDetails
			}
		}
		return st.Err()
	case errors.As(err, &nf):
		return status.Error(codes.NotFound, "item not found")
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// toInt: преобразование float64 -> int вне диапазона не определено, поэтому насыщаем
func toInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt
	case v <= math.MinInt64:
		return math.MinInt
	}
	return int(v)
}
