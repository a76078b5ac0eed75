package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	grpcstatus "google.golang.org/grpc/status"
)

func contextWithBearer(token string) context.Context {
	md := metadata.New(nil)
	if token != "" {
		md.Set("authorization", "Bearer "+token)
	}
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestUnaryServerInterceptor_MissingToken(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)
	interceptor := UnaryServerInterceptor(svc)

	called := false
	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		called = true
		return nil, nil
	})

	assert.False(t, called, "handler must not run without a token")
	st, ok := grpcstatus.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
}

func TestUnaryServerInterceptor_InvalidToken(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)
	interceptor := UnaryServerInterceptor(svc)

	_, err = interceptor(contextWithBearer("garbage"), nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler must not run for an invalid token")
		return nil, nil
	})

	st, ok := grpcstatus.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
}

func TestUnaryServerInterceptor_ValidTokenAttachesClaims(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)
	token, err := svc.IssueToken("operator-1")
	require.NoError(t, err)

	interceptor := UnaryServerInterceptor(svc)

	var seen *Claims
	_, err = interceptor(contextWithBearer(token), nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		seen = ClaimsFromContext(ctx)
		return "ok", nil
	})

	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "operator-1", seen.Subject)
}

func TestClaimsFromContext_Absent(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ClaimsFromContext(context.Background()))
}
