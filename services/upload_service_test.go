package services

import (
	"context"
	"mime/multipart"
	"testing"

	"stayhub/errors"
	"stayhub/services/logger"
)

func TestUploadWithoutCloudinary(t *testing.T) {
	svc := NewUploadService(nil, logger.NewNopLogger())
	_, err := svc.Upload(context.Background(), &multipart.FileHeader{Filename: "room.jpg"})
	if !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.UploadMany(context.Background(), nil); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Fatalf("empty batch: %v", err)
	}
}
