package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	grpcstatus "google.golang.org/grpc/status"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the Claims a successful UnaryServerInterceptor
// attached to ctx, or nil if none are present.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return claims
}

// UnaryServerInterceptor validates the "authorization: Bearer <token>"
// metadata entry on every unary call against svc, rejecting the call
// with Unauthenticated on failure and otherwise attaching the resulting
// Claims to the request context. Adapted from the teacher's HTTP
// JWTAuth middleware's extractBearerToken/validate-then-attach shape.
func UnaryServerInterceptor(svc *Service) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		token, ok := extractBearerToken(ctx)
		if !ok {
			return nil, grpcstatus.Error(codes.Unauthenticated, "missing bearer token")
		}

		claims, err := svc.ValidateToken(token)
		if err != nil {
			return nil, grpcstatus.Error(codes.Unauthenticated, err.Error())
		}

		return handler(context.WithValue(ctx, claimsContextKey{}, claims), req)
	}
}

// UnaryClientInterceptor attaches token as an "authorization: Bearer
// <token>" metadata entry on every outgoing unary call, for clients
// (opcuactl) authenticating against UnaryServerInterceptor.
func UnaryClientInterceptor(token string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if token != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func extractBearerToken(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", false
	}

	const prefix = "bearer "
	header := values[0]
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}
