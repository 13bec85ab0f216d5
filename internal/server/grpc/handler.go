package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophledger/internal/rpc"
	"github.com/dmitrijs2005/gophledger/internal/server/models"
)

func toIdentity(u *models.User) rpc.Identity {
	return rpc.Identity{ID: u.ID, Nickname: u.Nickname, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
}

func toEntry(e *models.Entry) rpc.Entry {
	return rpc.Entry{
		ID:        e.ID,
		OwnerID:   e.UserID,
		Date:      e.Date,
		Type:      e.Type,
		Category:  e.Category,
		Memo:      e.Memo,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}

func (s *GRPCServer) CreateIdentity(ctx context.Context, req *rpc.CreateIdentityRequest) (*rpc.CreateIdentityResponse, error) {
	u, err := s.users.CreateIdentity(ctx, req.Nickname, req.PasswordHash)
	if err != nil {
		return nil, s.toStatus(ctx, "create_identity", err)
	}

	s.logger.Info(ctx, "Registered", "nickname", u.Nickname, "user_id", u.ID)
	return &rpc.CreateIdentityResponse{Identity: toIdentity(u)}, nil
}

func (s *GRPCServer) FindIdentity(ctx context.Context, req *rpc.FindIdentityRequest) (*rpc.FindIdentityResponse, error) {
	u, err := s.users.FindByNickname(ctx, req.Nickname)
	if err != nil {
		return nil, s.toStatus(ctx, "find_identity", err)
	}
	return &rpc.FindIdentityResponse{Identity: toIdentity(u)}, nil
}

func (s *GRPCServer) DeleteIdentity(ctx context.Context, req *rpc.DeleteIdentityRequest) (*rpc.DeleteIdentityResponse, error) {
	if err := s.users.DeleteIdentity(ctx, req.ID); err != nil {
		return nil, s.toStatus(ctx, "delete_identity", err)
	}

	s.logger.Info(ctx, "Identity deleted", "user_id", req.ID)
	return &rpc.DeleteIdentityResponse{}, nil
}

func (s *GRPCServer) ListEntries(ctx context.Context, req *rpc.ListEntriesRequest) (*rpc.ListEntriesResponse, error) {
	items, err := s.entries.List(ctx, req.OwnerID)
	if err != nil {
		return nil, s.toStatus(ctx, "list_entries", err)
	}

	out := make([]rpc.Entry, 0, len(items))
	for _, e := range items {
		out = append(out, toEntry(e))
	}
	return &rpc.ListEntriesResponse{Entries: out}, nil
}

func (s *GRPCServer) InsertEntry(ctx context.Context, req *rpc.InsertEntryRequest) (*rpc.InsertEntryResponse, error) {
	e, err := s.entries.Insert(ctx, &models.Entry{
		UserID:   req.OwnerID,
		Date:     req.Date,
		Type:     req.Type,
		Category: req.Category,
		Memo:     req.Memo,
		Amount:   req.Amount,
	})
	if err != nil {
		return nil, s.toStatus(ctx, "insert_entry", err)
	}
	return &rpc.InsertEntryResponse{Entry: toEntry(e)}, nil
}

func (s *GRPCServer) UpdateEntry(ctx context.Context, req *rpc.UpdateEntryRequest) (*rpc.UpdateEntryResponse, error) {
	patch := models.EntryPatch{
		Date:     req.Date,
		Type:     req.Type,
		Category: req.Category,
		Memo:     req.Memo,
		Amount:   req.Amount,
	}
	e, err := s.entries.Update(ctx, req.OwnerID, req.ID, patch)
	if err != nil {
		return nil, s.toStatus(ctx, "update_entry", err)
	}
	return &rpc.UpdateEntryResponse{Entry: toEntry(e)}, nil
}

func (s *GRPCServer) DeleteEntry(ctx context.Context, req *rpc.DeleteEntryRequest) (*rpc.DeleteEntryResponse, error) {
	if err := s.entries.Delete(ctx, req.OwnerID, req.ID); err != nil {
		return nil, s.toStatus(ctx, "delete_entry", err)
	}
	return &rpc.DeleteEntryResponse{}, nil
}

func (s *GRPCServer) DeleteAllEntries(ctx context.Context, req *rpc.DeleteAllEntriesRequest) (*rpc.DeleteAllEntriesResponse, error) {
	n, err := s.entries.DeleteAll(ctx, req.OwnerID)
	if err != nil {
		return nil, s.toStatus(ctx, "delete_all_entries", err)
	}

	s.logger.Info(ctx, "Entries deleted", "owner_id", req.OwnerID, "count", n)
	return &rpc.DeleteAllEntriesResponse{Deleted: n}, nil
}

func (s *GRPCServer) PresignBackupUpload(ctx context.Context, req *rpc.PresignBackupUploadRequest) (*rpc.PresignBackupUploadResponse, error) {
	key, url, err := s.backups.PresignUpload(ctx, req.OwnerID, req.Filename)
	if err != nil {
		return nil, s.toStatus(ctx, "presign_backup_upload", err)
	}
	return &rpc.PresignBackupUploadResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) PresignBackupDownload(ctx context.Context, req *rpc.PresignBackupDownloadRequest) (*rpc.PresignBackupDownloadResponse, error) {
	url, err := s.backups.PresignDownload(ctx, req.OwnerID, req.Key)
	if err != nil {
		return nil, s.toStatus(ctx, "presign_backup_download", err)
	}
	return &rpc.PresignBackupDownloadResponse{URL: url}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}
