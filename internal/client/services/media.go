package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/satchel/internal/client/blob"
	"github.com/dmitrijs2005/satchel/internal/client/signer"
	"github.com/dmitrijs2005/satchel/internal/filex"
)

type MediaService interface {
	UploadFile(ctx context.Context, path string) (*blob.Descriptor, error)
	UploadBytes(ctx context.Context, data []byte, mimeType string) (*blob.Descriptor, error)
}

type Uploader interface {
	Upload(ctx context.Context, data []byte, mimeType string, s signer.Signer, servers []string) (*blob.Descriptor, error)
}

type mediaService struct {
	signing  signer.Signer
	uploader Uploader
	servers  []string
	maxBytes int64
}

func NewMediaService(s signer.Signer, uploader Uploader, servers []string, maxBytes int64) MediaService {
	return &mediaService{signing: s, uploader: uploader, servers: servers, maxBytes: maxBytes}
}

// UploadFile reads a local file, sniffs its MIME type and pushes it to the
// configured blob servers. The size bound is checked at read time, so an
// oversized file never reaches memory in full.
func (s *mediaService) UploadFile(ctx context.Context, path string) (*blob.Descriptor, error) {
	data, mimeType, err := filex.ReadForUpload(path, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.uploader.Upload(ctx, data, mimeType, s.signing, s.servers)
}

func (s *mediaService) UploadBytes(ctx context.Context, data []byte, mimeType string) (*blob.Descriptor, error) {
	return s.uploader.Upload(ctx, data, mimeType, s.signing, s.servers)
}
