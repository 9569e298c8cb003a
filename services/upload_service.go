package services

import (
	"context"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"stayhub/errors"
	"stayhub/services/logger"
)

const uploadFolder = "stayhub"

type UploadService struct {
	cld    *cloudinary.Cloudinary
	logger logger.Logger
}

func NewUploadService(cld *cloudinary.Cloudinary, log logger.Logger) *UploadService {
	if log == nil {
		log = logger.Default()
	}
	return &UploadService{cld: cld, logger: log}
}

// Upload đẩy file lên Cloudinary và trả về secure URL
func (s *UploadService) Upload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if s.cld == nil {
		return "", errors.Validation("File uploads are not configured")
	}
	file, err := fh.Open()
	if err != nil {
		return "", errors.Validation("Cannot read uploaded file")
	}
	defer file.Close()

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: uploadFolder})
	if err != nil {
		return "", errors.Internal("Upload failed", err)
	}
	if resp.Error.Message != "" {
		s.logger.Error("cloudinary rejected %s: %s", fh.Filename, resp.Error.Message)
		return "", errors.Validation(resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *UploadService) UploadMany(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, errors.Validation("No files uploaded")
	}
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := s.Upload(ctx, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
