package grpc

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/common"
	"github.com/dmitrijs2005/gophledger/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// apiKeyInterceptor rejects every call except Ping that does not carry the
// configured key in the x-api-key metadata.
func (s *GRPCServer) apiKeyInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if info.FullMethod == rpc.FullMethod(rpc.MethodPing) {
		return handler(ctx, req)
	}

	var key string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.APIKeyHeaderName)
		if len(values) > 0 {
			key = values[0]
		}
	}
	if len(key) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing api key")
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
		return nil, status.Error(codes.Unauthenticated, "invalid api key")
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "call failed", "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
	} else {
		s.logger.Info(ctx, "call", "method", info.FullMethod, "duration", time.Since(start))
	}
	return resp, err
}
