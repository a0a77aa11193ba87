package grpc

import (
	"context"

	"github.com/dmitrijs2005/poetrykeeper/internal/docstore"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Get(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	p, err := docstore.RequestPath(req)
	if err != nil {
		return nil, s.toStatus(ctx, "get", err)
	}

	value, exists, err := s.documents.Get(ctx, p)
	if err != nil {
		return nil, s.toStatus(ctx, "get", err)
	}

	resp, err := docstore.NewGetResponse(value, exists)
	if err != nil {
		return nil, s.toStatus(ctx, "get", err)
	}
	return resp, nil
}

func (s *GRPCServer) Set(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	p, err := docstore.RequestPath(req)
	if err != nil {
		return nil, s.toStatus(ctx, "set", err)
	}
	value, err := docstore.RequestValue(req)
	if err != nil {
		return nil, s.toStatus(ctx, "set", err)
	}

	stored, err := s.documents.Set(ctx, p, value)
	if err != nil {
		return nil, s.toStatus(ctx, "set", err)
	}

	resp, err := docstore.NewSetResponse(stored)
	if err != nil {
		return nil, s.toStatus(ctx, "set", err)
	}
	s.logger.Debug(ctx, "document set", "path", p.String())
	return resp, nil
}

func (s *GRPCServer) Push(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	p, err := docstore.RequestPath(req)
	if err != nil {
		return nil, s.toStatus(ctx, "push", err)
	}
	value, err := docstore.RequestValue(req)
	if err != nil {
		return nil, s.toStatus(ctx, "push", err)
	}

	key, stored, err := s.documents.Push(ctx, p, value)
	if err != nil {
		return nil, s.toStatus(ctx, "push", err)
	}

	resp, err := docstore.NewPushResponse(key, stored)
	if err != nil {
		return nil, s.toStatus(ctx, "push", err)
	}
	s.logger.Debug(ctx, "document pushed", "path", p.String(), "key", key)
	return resp, nil
}

func (s *GRPCServer) Remove(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	p, err := docstore.RequestPath(req)
	if err != nil {
		return nil, s.toStatus(ctx, "remove", err)
	}

	if err := s.documents.Remove(ctx, p); err != nil {
		return nil, s.toStatus(ctx, "remove", err)
	}

	s.logger.Debug(ctx, "document removed", "path", p.String())
	return &emptypb.Empty{}, nil
}
