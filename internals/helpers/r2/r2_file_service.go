package r2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	helper "specsnexus_backend/internals/helpers"
)

const maxUploadSize = int64(5 * 1024 * 1024)

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/jpg":  {},
}

var allowedImageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// ErrUnsupportedImage is returned when the upload is not a PNG or JPEG.
var ErrUnsupportedImage = errors.New("only PNG and JPEG images are allowed")

func validateImageUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > maxUploadSize {
		return fmt.Errorf("file exceeds %d bytes", maxUploadSize)
	}
	contentType := strings.ToLower(fileHeader.Header.Get("Content-Type"))
	if _, ok := allowedImageTypes[contentType]; !ok {
		return ErrUnsupportedImage
	}
	ext := ""
	if idx := strings.LastIndex(fileHeader.Filename, "."); idx >= 0 {
		ext = strings.ToLower(fileHeader.Filename[idx+1:])
	}
	if _, ok := allowedImageExtensions[ext]; !ok {
		return ErrUnsupportedImage
	}
	return nil
}

// UploadImage validates the file, re-encodes it to WebP and puts it under
// folder/ in the bucket. Returns the public URL served by the worker.
func (s *Service) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	if err := validateImageUpload(fileHeader); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	encoded, err := encodeWebP(raw, defaultWebPOptionsFromEnv())
	if err != nil {
		return "", fmt.Errorf("convert upload: %w", err)
	}

	objectKey := helper.GenerateUniqueFilename(folder, replaceExtension(fileHeader.Filename, ".webp"))
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(encoded),
		ContentType: aws.String("image/webp"),
	}); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	url := s.PublicURL(objectKey)
	log.Printf("[INFO] uploaded %s (%d bytes)", objectKey, len(encoded))
	return url, nil
}

func replaceExtension(filename, ext string) string {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		return filename[:idx] + ext
	}
	return filename + ext
}
