package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "gophledger.v1.LedgerService"

const (
	MethodCreateIdentity        = "CreateIdentity"
	MethodFindIdentity          = "FindIdentity"
	MethodDeleteIdentity        = "DeleteIdentity"
	MethodListEntries           = "ListEntries"
	MethodInsertEntry           = "InsertEntry"
	MethodUpdateEntry           = "UpdateEntry"
	MethodDeleteEntry           = "DeleteEntry"
	MethodDeleteAllEntries      = "DeleteAllEntries"
	MethodPresignBackupUpload   = "PresignBackupUpload"
	MethodPresignBackupDownload = "PresignBackupDownload"
	MethodPing                  = "Ping"
)

// FullMethod returns the "/service/method" path used in interceptors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// LedgerServiceServer is implemented by the backend.
type LedgerServiceServer interface {
	CreateIdentity(context.Context, *CreateIdentityRequest) (*CreateIdentityResponse, error)
	FindIdentity(context.Context, *FindIdentityRequest) (*FindIdentityResponse, error)
	DeleteIdentity(context.Context, *DeleteIdentityRequest) (*DeleteIdentityResponse, error)
	ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error)
	InsertEntry(context.Context, *InsertEntryRequest) (*InsertEntryResponse, error)
	UpdateEntry(context.Context, *UpdateEntryRequest) (*UpdateEntryResponse, error)
	DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error)
	DeleteAllEntries(context.Context, *DeleteAllEntriesRequest) (*DeleteAllEntriesResponse, error)
	PresignBackupUpload(context.Context, *PresignBackupUploadRequest) (*PresignBackupUploadResponse, error)
	PresignBackupDownload(context.Context, *PresignBackupDownloadRequest) (*PresignBackupDownloadResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// RegisterLedgerServiceServer attaches srv to s.
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

// unary builds a MethodDesc that decodes Req, runs it through the server's
// interceptor chain and dispatches to call.
func unary[Req any, Resp any](method string, call func(LedgerServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LedgerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LedgerServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LedgerServiceDesc describes the service for grpc.Server.RegisterService.
var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCreateIdentity, LedgerServiceServer.CreateIdentity),
		unary(MethodFindIdentity, LedgerServiceServer.FindIdentity),
		unary(MethodDeleteIdentity, LedgerServiceServer.DeleteIdentity),
		unary(MethodListEntries, LedgerServiceServer.ListEntries),
		unary(MethodInsertEntry, LedgerServiceServer.InsertEntry),
		unary(MethodUpdateEntry, LedgerServiceServer.UpdateEntry),
		unary(MethodDeleteEntry, LedgerServiceServer.DeleteEntry),
		unary(MethodDeleteAllEntries, LedgerServiceServer.DeleteAllEntries),
		unary(MethodPresignBackupUpload, LedgerServiceServer.PresignBackupUpload),
		unary(MethodPresignBackupDownload, LedgerServiceServer.PresignBackupDownload),
		unary(MethodPing, LedgerServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophledger/v1/ledger.json",
}

// LedgerServiceClient is the client-side stub. Every call is sent with the
// JSON content-subtype.
type LedgerServiceClient interface {
	CreateIdentity(ctx context.Context, in *CreateIdentityRequest, opts ...grpc.CallOption) (*CreateIdentityResponse, error)
	FindIdentity(ctx context.Context, in *FindIdentityRequest, opts ...grpc.CallOption) (*FindIdentityResponse, error)
	DeleteIdentity(ctx context.Context, in *DeleteIdentityRequest, opts ...grpc.CallOption) (*DeleteIdentityResponse, error)
	ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error)
	InsertEntry(ctx context.Context, in *InsertEntryRequest, opts ...grpc.CallOption) (*InsertEntryResponse, error)
	UpdateEntry(ctx context.Context, in *UpdateEntryRequest, opts ...grpc.CallOption) (*UpdateEntryResponse, error)
	DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error)
	DeleteAllEntries(ctx context.Context, in *DeleteAllEntriesRequest, opts ...grpc.CallOption) (*DeleteAllEntriesResponse, error)
	PresignBackupUpload(ctx context.Context, in *PresignBackupUploadRequest, opts ...grpc.CallOption) (*PresignBackupUploadResponse, error)
	PresignBackupDownload(ctx context.Context, in *PresignBackupDownloadRequest, opts ...grpc.CallOption) (*PresignBackupDownloadResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) CreateIdentity(ctx context.Context, in *CreateIdentityRequest, opts ...grpc.CallOption) (*CreateIdentityResponse, error) {
	return invoke[CreateIdentityResponse](ctx, c.cc, MethodCreateIdentity, in, opts)
}

func (c *ledgerServiceClient) FindIdentity(ctx context.Context, in *FindIdentityRequest, opts ...grpc.CallOption) (*FindIdentityResponse, error) {
	return invoke[FindIdentityResponse](ctx, c.cc, MethodFindIdentity, in, opts)
}

func (c *ledgerServiceClient) DeleteIdentity(ctx context.Context, in *DeleteIdentityRequest, opts ...grpc.CallOption) (*DeleteIdentityResponse, error) {
	return invoke[DeleteIdentityResponse](ctx, c.cc, MethodDeleteIdentity, in, opts)
}

func (c *ledgerServiceClient) ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c.cc, MethodListEntries, in, opts)
}

func (c *ledgerServiceClient) InsertEntry(ctx context.Context, in *InsertEntryRequest, opts ...grpc.CallOption) (*InsertEntryResponse, error) {
	return invoke[InsertEntryResponse](ctx, c.cc, MethodInsertEntry, in, opts)
}

func (c *ledgerServiceClient) UpdateEntry(ctx context.Context, in *UpdateEntryRequest, opts ...grpc.CallOption) (*UpdateEntryResponse, error) {
	return invoke[UpdateEntryResponse](ctx, c.cc, MethodUpdateEntry, in, opts)
}

func (c *ledgerServiceClient) DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error) {
	return invoke[DeleteEntryResponse](ctx, c.cc, MethodDeleteEntry, in, opts)
}

func (c *ledgerServiceClient) DeleteAllEntries(ctx context.Context, in *DeleteAllEntriesRequest, opts ...grpc.CallOption) (*DeleteAllEntriesResponse, error) {
	return invoke[DeleteAllEntriesResponse](ctx, c.cc, MethodDeleteAllEntries, in, opts)
}

func (c *ledgerServiceClient) PresignBackupUpload(ctx context.Context, in *PresignBackupUploadRequest, opts ...grpc.CallOption) (*PresignBackupUploadResponse, error) {
	return invoke[PresignBackupUploadResponse](ctx, c.cc, MethodPresignBackupUpload, in, opts)
}

func (c *ledgerServiceClient) PresignBackupDownload(ctx context.Context, in *PresignBackupDownloadRequest, opts ...grpc.CallOption) (*PresignBackupDownloadResponse, error) {
	return invoke[PresignBackupDownloadResponse](ctx, c.cc, MethodPresignBackupDownload, in, opts)
}

func (c *ledgerServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
