package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/auth"
	"github.com/dmitrijs2005/poetrykeeper/internal/common"
	"github.com/dmitrijs2005/poetrykeeper/internal/docstore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// TokenSubject names this program in the tokens it mints.
const TokenSubject = "poetrykeeper-cli"

const tokenValidity = time.Minute

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      docstore.DocumentStoreClient
	secret      []byte
	timeout     time.Duration
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if len(s.secret) > 0 {
		token, err := auth.GenerateToken(TokenSubject, s.secret, tokenValidity)
		if err != nil {
			return fmt.Errorf("mint token: %w", err)
		}
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a lazily connecting client. An empty secret sends
// no token; a zero timeout applies none.
func NewGRPCClient(endpointURL, secret string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, secret: []byte(secret), timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = docstore.NewDocumentStoreClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Get reads path. exists is false for an absent child or an empty collection.
func (s *GRPCClient) Get(ctx context.Context, path string) (any, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Get(ctx, docstore.NewPathRequest(path))
	if err != nil {
		return nil, false, s.mapError(err)
	}

	value, exists := docstore.ParseGetResponse(resp)
	return value, exists, nil
}

// Set writes value at path and returns it as stored.
func (s *GRPCClient) Set(ctx context.Context, path string, value any) (any, error) {
	req, err := docstore.NewValueRequest(path, value)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Set(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return docstore.ParseSetResponse(resp), nil
}

// Push appends value to the collection at path and returns the new key and
// the stored document.
func (s *GRPCClient) Push(ctx context.Context, path string, value any) (string, any, error) {
	req, err := docstore.NewValueRequest(path, value)
	if err != nil {
		return "", nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Push(ctx, req)
	if err != nil {
		return "", nil, s.mapError(err)
	}
	return docstore.ParsePushResponse(resp)
}

func (s *GRPCClient) Remove(ctx context.Context, path string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Remove(ctx, docstore.NewPathRequest(path)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.NotFound:
		return common.ErrNotFound
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
