// Package grpc exposes the ledger backend over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophledger/internal/logging"
	"github.com/dmitrijs2005/gophledger/internal/rpc"
	"github.com/dmitrijs2005/gophledger/internal/server/models"
	"google.golang.org/grpc"
)

type userSvc interface {
	CreateIdentity(ctx context.Context, nickname, passwordHash string) (*models.User, error)
	FindByNickname(ctx context.Context, nickname string) (*models.User, error)
	DeleteIdentity(ctx context.Context, id string) error
}

type entrySvc interface {
	List(ctx context.Context, ownerID string) ([]*models.Entry, error)
	Insert(ctx context.Context, e *models.Entry) (*models.Entry, error)
	Update(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.Entry, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteAll(ctx context.Context, ownerID string) (int64, error)
}

type backupSvc interface {
	PresignUpload(ctx context.Context, ownerID, filename string) (string, string, error)
	PresignDownload(ctx context.Context, ownerID, key string) (string, error)
}

type GRPCServer struct {
	rpc.UnimplementedLedgerServiceServer
	address string
	apiKey  string
	users   userSvc
	entries entrySvc
	backups backupSvc
	logger  logging.Logger
}

func NewGRPCServer(a string, apiKey string, l logging.Logger, us userSvc, es entrySvc, bs backupSvc) *GRPCServer {
	return &GRPCServer{
		address: a,
		apiKey:  apiKey,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		entries: es,
		backups: bs,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.apiKeyInterceptor))

	rpc.RegisterLedgerServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
