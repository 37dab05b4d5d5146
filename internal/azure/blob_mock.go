package azure

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// MockBlobStorageClient is an in-memory implementation of ReportStorage for testing
type MockBlobStorageClient struct {
	Storage map[string][]byte
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMockBlobStorageClient creates a new mock blob storage client
func NewMockBlobStorageClient(logger *zap.Logger) *MockBlobStorageClient {
	return &MockBlobStorageClient{
		Storage: make(map[string][]byte),
		logger:  logger,
	}
}

// UploadReport stores a report file in memory
func (c *MockBlobStorageClient) UploadReport(ctx context.Context, reportID, filename string, data []byte, contentType string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	blobName := fmt.Sprintf("reports/%s/%s", reportID, filename)
	c.Storage[blobName] = bytes.Clone(data)

	if c.logger != nil {
		c.logger.Info("mock: report uploaded",
			zap.String("blob_name", blobName),
			zap.Int("size_bytes", len(data)),
		)
	}

	return blobName, nil
}

// DownloadReport retrieves a report file from memory
func (c *MockBlobStorageClient) DownloadReport(ctx context.Context, blobName string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, exists := c.Storage[blobName]
	if !exists {
		return nil, fmt.Errorf("blob not found: %s", blobName)
	}

	return bytes.Clone(data), nil
}

// UploadPDF stores a generated PDF in memory
func (c *MockBlobStorageClient) UploadPDF(ctx context.Context, reportID string, data []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	blobName := fmt.Sprintf("pdf/%s.pdf", reportID)
	c.Storage[blobName] = bytes.Clone(data)

	if c.logger != nil {
		c.logger.Info("mock: PDF uploaded",
			zap.String("blob_name", blobName),
			zap.Int("size_bytes", len(data)),
		)
	}

	return blobName, nil
}

// DownloadPDF retrieves a generated PDF from memory
func (c *MockBlobStorageClient) DownloadPDF(ctx context.Context, blobName string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, exists := c.Storage[blobName]
	if !exists {
		return nil, fmt.Errorf("blob not found: %s", blobName)
	}

	return bytes.Clone(data), nil
}

// Clear removes all data from in-memory storage
func (c *MockBlobStorageClient) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Storage = make(map[string][]byte)
}

// ListBlobs returns all blob names in storage
func (c *MockBlobStorageClient) ListBlobs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	blobs := make([]string, 0, len(c.Storage))
	for name := range c.Storage {
		blobs = append(blobs, name)
	}

	return blobs
}

// Ensure MockBlobStorageClient implements ReportStorage interface
var _ ReportStorage = (*MockBlobStorageClient)(nil)
