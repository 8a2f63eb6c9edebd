package services

import (
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"github.com/clearcrest-windows/clearcrest-api/utils"
)

// MockImageService is a mock implementation of ImageService for testing
type MockImageService struct {
	images     map[string]bool // set of stored keys
	mu         sync.RWMutex
	FailUpload bool // when set, UploadImage returns an error
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		images: make(map[string]bool),
	}
}

// SetAsMockForTesting sets this mock as the global image service instance
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates the file and records a date-partitioned key
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if m.FailUpload {
		return "", fmt.Errorf("mock upload failure")
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key := utils.NewJobPhotoKey(time.Now())

	m.mu.Lock()
	m.images[key] = true
	m.mu.Unlock()

	return key, nil
}

// GetImageURL returns a deterministic mock URL
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}
	return fmt.Sprintf("https://mock-images.example.com/%s", imageKey), nil
}

// DeleteImage removes the key from the mock store
func (m *MockImageService) DeleteImage(imageKey string) error {
	m.mu.Lock()
	delete(m.images, imageKey)
	m.mu.Unlock()
	return nil
}

// HasImage reports whether a key was stored (test helper)
func (m *MockImageService) HasImage(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.images[imageKey]
}
