package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/common"
	"github.com/dmitrijs2005/gophledger/internal/logging"
	"github.com/dmitrijs2005/gophledger/internal/rpc"
	"github.com/dmitrijs2005/gophledger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", "key", logging.NopLogger{}, &fakeUser{}, &fakeEntry{}, &fakeBackup{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "Run returned error on graceful stop")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", "key", logging.NopLogger{}, &fakeUser{}, &fakeEntry{}, &fakeBackup{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.Error(t, srv.Run(ctx))
}

func TestServe_EndToEndOverJSONCodec(t *testing.T) {
	u := &fakeUser{findOut: &models.User{ID: "u-1", Nickname: "민지", PasswordHash: "h"}}
	srv := NewGRPCServer("", "key", logging.NopLogger{}, u, &fakeEntry{}, &fakeBackup{})

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := rpc.NewLedgerServiceClient(conn)

	ping, err := client.Ping(context.Background(), &rpc.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", ping.Status)

	_, err = client.FindIdentity(context.Background(), &rpc.FindIdentityRequest{Nickname: "민지"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	authed := metadata.AppendToOutgoingContext(context.Background(), common.APIKeyHeaderName, "key")
	found, err := client.FindIdentity(authed, &rpc.FindIdentityRequest{Nickname: "민지"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", found.Identity.ID)
}
