package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/common"
	"github.com/dmitrijs2005/gophledger/internal/ledger"
	"github.com/dmitrijs2005/gophledger/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GRPCGateway talks to the backend's LedgerService with the JSON codec.
type GRPCGateway struct {
	conn    *grpc.ClientConn
	client  rpc.LedgerServiceClient
	apiKey  string
	timeout time.Duration
}

func withAPIKey(ctx context.Context, key string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.APIKeyHeaderName, key)

	return metadata.NewOutgoingContext(ctx, md)
}

func (g *GRPCGateway) apiKeyInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAPIKey(ctx, g.apiKey), method, req, reply, cc, opts...)
}

// NewGRPCGateway prepares a client for endpoint. The connection is
// established lazily on the first call.
func NewGRPCGateway(endpoint, apiKey string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCGateway, error) {
	g := &GRPCGateway{apiKey: apiKey, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(g.apiKeyInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	g.conn = conn
	g.client = rpc.NewLedgerServiceClient(conn)
	return g, nil
}

func (g *GRPCGateway) Close() error {
	return g.conn.Close()
}

func (g *GRPCGateway) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func toRecord(i rpc.Identity) *models.IdentityRecord {
	return &models.IdentityRecord{ID: i.ID, Nickname: i.Nickname, PasswordHash: i.PasswordHash}
}

func toEntry(e rpc.Entry) models.Entry {
	return models.Entry{
		ID:       e.ID,
		Date:     e.Date,
		Kind:     ledger.Kind(e.Type),
		Category: e.Category,
		Memo:     e.Memo,
		Amount:   e.Amount,
	}
}

func (g *GRPCGateway) CreateIdentity(ctx context.Context, nickname, passwordHash string) (*models.IdentityRecord, error) {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	resp, err := g.client.CreateIdentity(ctx, &rpc.CreateIdentityRequest{Nickname: nickname, PasswordHash: passwordHash})
	if err != nil {
		return nil, mapError(err)
	}
	return toRecord(resp.Identity), nil
}

func (g *GRPCGateway) FindIdentity(ctx context.Context, nickname string) (*models.IdentityRecord, error) {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	resp, err := g.client.FindIdentity(ctx, &rpc.FindIdentityRequest{Nickname: nickname})
	if err != nil {
		return nil, mapError(err)
	}
	return toRecord(resp.Identity), nil
}

func (g *GRPCGateway) DeleteIdentity(ctx context.Context, id string) error {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	if _, err := g.client.DeleteIdentity(ctx, &rpc.DeleteIdentityRequest{ID: id}); err != nil {
		return mapError(err)
	}
	return nil
}

func (g *GRPCGateway) ListEntries(ctx context.Context, ownerID string) ([]models.Entry, error) {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	resp, err := g.client.ListEntries(ctx, &rpc.ListEntriesRequest{OwnerID: ownerID})
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]models.Entry, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		out = append(out, toEntry(e))
	}
	return out, nil
}

func (g *GRPCGateway) InsertEntry(ctx context.Context, ownerID string, e models.NewEntry) (*models.Entry, error) {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	resp, err := g.client.InsertEntry(ctx, &rpc.InsertEntryRequest{
		OwnerID:  ownerID,
		Date:     e.Date,
		Type:     string(e.Kind),
		Category: e.Category,
		Memo:     e.Memo,
		Amount:   e.Amount,
	})
	if err != nil {
		return nil, mapError(err)
	}
	out := toEntry(resp.Entry)
	return &out, nil
}

// UpdateEntry sends only the fields set in patch.
func (g *GRPCGateway) UpdateEntry(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.Entry, error) {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	req := &rpc.UpdateEntryRequest{
		OwnerID:  ownerID,
		ID:       id,
		Date:     patch.Date,
		Category: patch.Category,
		Memo:     patch.Memo,
		Amount:   patch.Amount,
	}
	if patch.Kind != nil {
		k := string(*patch.Kind)
		req.Type = &k
	}

	resp, err := g.client.UpdateEntry(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	out := toEntry(resp.Entry)
	return &out, nil
}

func (g *GRPCGateway) DeleteEntry(ctx context.Context, ownerID, id string) error {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	if _, err := g.client.DeleteEntry(ctx, &rpc.DeleteEntryRequest{OwnerID: ownerID, ID: id}); err != nil {
		return mapError(err)
	}
	return nil
}

func (g *GRPCGateway) DeleteAllEntries(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	resp, err := g.client.DeleteAllEntries(ctx, &rpc.DeleteAllEntriesRequest{OwnerID: ownerID})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Deleted, nil
}

func (g *GRPCGateway) PresignBackupUpload(ctx context.Context, ownerID, filename string) (string, string, error) {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	resp, err := g.client.PresignBackupUpload(ctx, &rpc.PresignBackupUploadRequest{OwnerID: ownerID, Filename: filename})
	if err != nil {
		return "", "", mapError(err)
	}
	return resp.Key, resp.URL, nil
}

func (g *GRPCGateway) PresignBackupDownload(ctx context.Context, ownerID, key string) (string, error) {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	resp, err := g.client.PresignBackupDownload(ctx, &rpc.PresignBackupDownloadRequest{OwnerID: ownerID, Key: key})
	if err != nil {
		return "", mapError(err)
	}
	return resp.URL, nil
}

func (g *GRPCGateway) Ping(ctx context.Context) error {
	ctx, cancel := g.bounded(ctx)
	defer cancel()

	resp, err := g.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrValidation, st.Message())
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrConflict
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
