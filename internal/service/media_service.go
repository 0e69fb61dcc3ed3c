package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Local post photos must be jpeg or png; Google rejects everything else.
var allowedMediaTypes = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {},
}

type MediaService interface {
	UploadPostMedia(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type mediaService struct {
	r2 R2Service
}

func NewMediaService(r2 R2Service) MediaService {
	return &mediaService{r2: r2}
}

func (s *mediaService) UploadPostMedia(ctx context.Context, file *multipart.FileHeader) (string, error) {
	fileContent, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", fmt.Errorf("unsupported file type: %w", err)
	}
	if _, ok := allowedMediaTypes[fileType.Extension]; !ok {
		return "", fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	url, err := s.r2.UploadToR2(ctx, key, fileBytes, fileType.MIME.Value)
	if err != nil {
		return "", fmt.Errorf("error uploading file: %w", err)
	}

	return url, nil
}
