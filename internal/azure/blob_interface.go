package azure

import (
	"context"
)

// ReportStorage defines the interface for report blob storage operations
// This interface allows for easier testing with mock implementations
type ReportStorage interface {
	UploadReport(ctx context.Context, reportID, filename string, data []byte, contentType string) (string, error)
	DownloadReport(ctx context.Context, blobName string) ([]byte, error)
	UploadPDF(ctx context.Context, reportID string, data []byte) (string, error)
	DownloadPDF(ctx context.Context, blobName string) ([]byte, error)
}

// Ensure BlobStorageClient implements ReportStorage interface
var _ ReportStorage = (*BlobStorageClient)(nil)
