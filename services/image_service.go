package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/clearcrest-windows/clearcrest-api/utils"
)

// ImageService handles job-photo storage: upload, URL generation, deletion
type ImageService interface {
	// UploadImage validates and stores an image file, returns the storage key
	UploadImage(fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL generates a URL for accessing a stored image
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(imageKey string) error
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
}

var imageServiceInstance ImageService

// InitImageService initializes the image service with S3 backend
func InitImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{
		s3Service: s3Service,
	}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// UploadImage validates and uploads an image file to S3
func (s *S3ImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	// Validate the image file
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	// Upload to S3
	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s3Key, nil
}

// GetImageURL returns a presigned URL for the stored image
func (s *S3ImageService) GetImageURL(imageKey string) (string, error) {
	return s.s3Service.GetPresignedURL(imageKey)
}

// DeleteImage removes the image from S3
func (s *S3ImageService) DeleteImage(imageKey string) error {
	return s.s3Service.DeleteFile(imageKey)
}

// LocalImageService implements ImageService on the local filesystem. Used
// in development when no S3 bucket is configured; images are served from
// the /uploads route.
type LocalImageService struct {
	baseDir string
}

// InitLocalImageService initializes the image service with a local backend
func InitLocalImageService(baseDir string) ImageService {
	imageServiceInstance = &LocalImageService{baseDir: baseDir}
	return imageServiceInstance
}

// UploadImage validates and saves an image file under the date-partitioned
// local path
func (s *LocalImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key := utils.NewJobPhotoKey(time.Now())
	if err := utils.SaveUploadedFile(fileHeader, s.baseDir, key); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return key, nil
}

// GetImageURL returns the local serving path for the stored image
func (s *LocalImageService) GetImageURL(imageKey string) (string, error) {
	return utils.GetImageURL(imageKey), nil
}

// DeleteImage removes the image file from the local filesystem
func (s *LocalImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(imageKey)))
}
