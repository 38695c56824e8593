// Package grpcserver adapts the storefront service to gRPC.
package grpcserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/api/wire"
	"storefront/service"
)

// Server adapts Service to gRPC.
type Server struct {
	svc *service.Service
}

func NewServer(svc *service.Service) *Server {
	return &Server{svc: svc}
}

// New returns a grpc.Server with the storefront registered and call
// logging installed.
func New(svc *service.Service, logger *slog.Logger) *grpc.Server {
	if logger == nil {
		logger = slog.Default()
	}
	g := grpc.NewServer(grpc.ChainUnaryInterceptor(logCalls(logger.With("component", "grpc"))))
	RegisterStorefrontServer(g, NewServer(svc))
	return g
}

// -------------------- Commands --------------------

func (s *Server) CreateProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decode[wire.ProductRequest](in)
	if err != nil {
		return nil, err
	}
	p, err := s.svc.CreateProduct(req.Name, *req.Price)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(wire.ProductCreated(p.ID))
}

func (s *Server) CreateOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decode[wire.OrderRequest](in)
	if err != nil {
		return nil, err
	}
	o, err := s.svc.CreateOrder(req.Products)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(wire.OrderCreated(o.ID))
}

func (s *Server) UpdateOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decode[wire.OrderRequest](in)
	if err != nil {
		return nil, err
	}
	if req.ID == nil {
		return nil, toStatus(&wire.ValidationError{Field: "id", Reason: "is required"})
	}
	if err := s.svc.UpdateOrder(*req.ID, req.Products); err != nil {
		return nil, toStatus(err)
	}
	return encode(wire.OrderUpdated)
}

func (s *Server) DeleteOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decode[wire.IDRequest](in)
	if err != nil {
		return nil, err
	}
	if err := s.svc.DeleteOrder(*req.ID); err != nil {
		return nil, toStatus(err)
	}
	return encode(wire.OrderDeleted)
}

// -------------------- Queries --------------------

func (s *Server) GetProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decode[wire.IDRequest](in)
	if err != nil {
		return nil, err
	}
	p, err := s.svc.GetProduct(*req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(p)
}

func (s *Server) ListProducts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(map[string]any{"products": s.svc.ListProducts()})
}

func (s *Server) GetOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decode[wire.IDRequest](in)
	if err != nil {
		return nil, err
	}
	d, err := s.svc.GetOrderDetail(*req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(d)
}

func (s *Server) ListOrders(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(wire.OrderIndex(s.svc.ListOrders()))
}

// -------------------- Converters --------------------

// decode runs a Struct through the same JSON decoding and validation as
// an HTTP body.
func decode[T wire.Validator](in *structpb.Struct) (T, error) {
	var zero T
	raw, err := protojson.Marshal(in)
	if err != nil {
		return zero, status.Error(codes.InvalidArgument, err.Error())
	}
	req, err := wire.Decode[T](bytes.NewReader(raw))
	if err != nil {
		return zero, toStatus(err)
	}
	return req, nil
}

func encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case wire.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func logCalls(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		level := slog.LevelInfo
		if code == codes.Internal || code == codes.Unknown {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "rpc",
			"method", info.FullMethod,
			"code", code.String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}
