package rpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnimplementedLedgerServiceServer answers every method with
// codes.Unimplemented. Embed it to implement a subset of the service.
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) CreateIdentity(context.Context, *CreateIdentityRequest) (*CreateIdentityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateIdentity not implemented")
}

func (UnimplementedLedgerServiceServer) FindIdentity(context.Context, *FindIdentityRequest) (*FindIdentityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindIdentity not implemented")
}

func (UnimplementedLedgerServiceServer) DeleteIdentity(context.Context, *DeleteIdentityRequest) (*DeleteIdentityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteIdentity not implemented")
}

func (UnimplementedLedgerServiceServer) ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEntries not implemented")
}

func (UnimplementedLedgerServiceServer) InsertEntry(context.Context, *InsertEntryRequest) (*InsertEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method InsertEntry not implemented")
}

func (UnimplementedLedgerServiceServer) UpdateEntry(context.Context, *UpdateEntryRequest) (*UpdateEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateEntry not implemented")
}

func (UnimplementedLedgerServiceServer) DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteEntry not implemented")
}

func (UnimplementedLedgerServiceServer) DeleteAllEntries(context.Context, *DeleteAllEntriesRequest) (*DeleteAllEntriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAllEntries not implemented")
}

func (UnimplementedLedgerServiceServer) PresignBackupUpload(context.Context, *PresignBackupUploadRequest) (*PresignBackupUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PresignBackupUpload not implemented")
}

func (UnimplementedLedgerServiceServer) PresignBackupDownload(context.Context, *PresignBackupDownloadRequest) (*PresignBackupDownloadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PresignBackupDownload not implemented")
}

func (UnimplementedLedgerServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
