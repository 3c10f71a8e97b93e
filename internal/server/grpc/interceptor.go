package grpc

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/common"
	pb "github.com/dmitrijs2005/forkvault/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// apiKeyInterceptor requires the shared gateway key in the api_key
// metadata of every call except Ping.
func (s *GRPCServer) apiKeyInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if len(s.apiKey) == 0 || info.FullMethod == pb.Gateway_Ping_FullMethodName {
		return handler(ctx, req)
	}

	var key string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.APIKeyHeaderName); len(values) > 0 {
			key = values[0]
		}
	}
	if key == "" {
		return nil, status.Error(codes.Unauthenticated, "missing api key")
	}
	if subtle.ConstantTimeCompare([]byte(key), s.apiKey) != 1 {
		return nil, status.Error(codes.Unauthenticated, "invalid api key")
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "code", status.Code(err).String(), "took", time.Since(start))
	return resp, err
}
