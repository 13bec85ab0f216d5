package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/common"
	sc "github.com/dmitrijs2005/gophledger/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const backupPrefix = "backups"

// BackupService hands out presigned URLs so clients can move backup files
// to and from object storage without the server proxying the bytes.
type BackupService struct {
	config *sc.Config
}

func NewBackupService(config *sc.Config) *BackupService {
	return &BackupService{config: config}
}

// BackupKey returns the object key of an owner's backup file.
func BackupKey(ownerID, filename string) string {
	return path.Join(backupPrefix, ownerID, filename)
}

func (s *BackupService) validity() time.Duration {
	if s.config.PresignValidity <= 0 {
		return 15 * time.Minute
	}
	return s.config.PresignValidity
}

func (s *BackupService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns the object key and a presigned PUT URL for filename
// under the owner's prefix.
func (s *BackupService) PresignUpload(ctx context.Context, ownerID, filename string) (string, string, error) {
	if err := requireOwner(ownerID); err != nil {
		return "", "", err
	}
	if filename == "" || filename != path.Base(filename) || filename == "." || filename == ".." {
		return "", "", fmt.Errorf("%w: invalid backup filename %q", common.ErrInvalidArgument, filename)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := BackupKey(ownerID, filename)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.validity()))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignDownload returns a presigned GET URL for key. Keys outside the
// owner's prefix are rejected.
func (s *BackupService) PresignDownload(ctx context.Context, ownerID, key string) (string, error) {
	if err := requireOwner(ownerID); err != nil {
		return "", err
	}
	prefix := BackupKey(ownerID, "") + "/"
	if !strings.HasPrefix(key, prefix) || path.Clean(key) != key || len(key) == len(prefix) {
		return "", fmt.Errorf("%w: key %q is outside the owner's backups", common.ErrInvalidArgument, key)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.validity()))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
