package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"taskhive/models"
	"taskhive/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	MaxImageBytes = 5 << 20
	cloudinaryHost = "res.cloudinary.com"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld        *cloudinary.Cloudinary
	cloudName  string
	baseFolder string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, baseFolder string) (*CloudinaryStorage, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStorage{cld: cld, cloudName: cloudName, baseFolder: baseFolder}, nil
}

// UploadImage uploads an image under baseFolder/folder.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (*models.UploadResult, error) {
	params := uploader.UploadParams{
		Folder:         path.Join(s.baseFolder, folder),
		ResourceType:   "image",
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
	}
	if name := strings.TrimSuffix(path.Base(filename), path.Ext(filename)); name != "" && name != "." {
		params.Tags = []string{name}
	}

	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorage: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("CloudinaryStorage: no public ID returned")
	}
	return &models.UploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: "image"})
	if err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete file: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("CloudinaryStorage: delete rejected: %s", result.Error.Message)
	}
	return nil
}

func (s *CloudinaryStorage) PublicIDFromURL(rawURL string) (string, bool) {
	return PublicIDFromURL(s.cloudName, rawURL)
}

// PublicIDFromURL extracts "folder/name" from
// https://res.cloudinary.com/<cloud>/image/upload/[transforms/][v123/]folder/name.ext.
func PublicIDFromURL(cloudName, rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != cloudinaryHost {
		return "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != cloudName || parts[2] != "upload" {
		return "", false
	}
	rest := parts[3:]
	for i, p := range rest {
		if len(p) > 1 && p[0] == 'v' && isDigits(p[1:]) {
			rest = rest[i+1:]
			break
		}
	}
	if len(rest) == 0 {
		return "", false
	}
	id := strings.Join(rest, "/")
	id = strings.TrimSuffix(id, path.Ext(id))
	return id, id != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// CheckImage validates an upload before it is sent to the media host.
func CheckImage(size int64, contentType string) error {
	if size <= 0 {
		return utils.ErrValidation("file is empty")
	}
	if size > MaxImageBytes {
		return utils.ErrValidation("file must be at most 5MB")
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return utils.ErrValidation("file must be a JPEG, PNG, WebP or GIF image")
	}
	return nil
}
