// Command test-azure-clients exercises the Azure OpenAI and Blob Storage
// clients against real credentials. It is a manual smoke test, not part of
// the automated suite.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"

	"github.com/ritirai06/SWASTHMATE/internal/azure"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	openaiEndpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	openaiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	openaiDeployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT")

	storageAccountName := os.Getenv("AZURE_STORAGE_ACCOUNT_NAME")
	storageAccountKey := os.Getenv("AZURE_STORAGE_ACCOUNT_KEY")
	storageContainer := os.Getenv("AZURE_STORAGE_REPORT_CONTAINER")
	if storageContainer == "" {
		storageContainer = "medical-reports"
	}

	if storageAccountName == "" || storageAccountKey == "" {
		logger.Fatal("Missing Azure Storage credentials. Set AZURE_STORAGE_ACCOUNT_NAME and AZURE_STORAGE_ACCOUNT_KEY")
	}

	ctx := context.Background()

	logger.Info("=== Testing Azure Blob Storage Client ===")
	if err := testBlobStorageClient(ctx, storageAccountName, storageAccountKey, storageContainer, logger); err != nil {
		logger.Error("Blob storage client test failed", zap.Error(err))
	} else {
		logger.Info("✅ Blob storage client test passed")
	}

	if openaiEndpoint == "" || openaiKey == "" || openaiDeployment == "" {
		logger.Info("Azure OpenAI credentials not set, skipping OpenAI test")
		return
	}

	logger.Info("=== Testing Azure OpenAI Client ===")
	if err := testOpenAIClient(ctx, openaiEndpoint, openaiKey, openaiDeployment, logger); err != nil {
		logger.Error("OpenAI client test failed", zap.Error(err))
	} else {
		logger.Info("✅ OpenAI client test passed")
	}
}

func testBlobStorageClient(ctx context.Context, accountName, accountKey, container string, logger *zap.Logger) error {
	client, err := azure.NewBlobStorageClient(accountName, accountKey, container, logger)
	if err != nil {
		return fmt.Errorf("failed to create blob storage client: %w", err)
	}

	reportID := fmt.Sprintf("smoke-%d", time.Now().Unix())
	content := []byte("Hemoglobin: 13.5 g/dl\nGlucose: 92 mg/dl\n")

	blobName, err := client.UploadReport(ctx, reportID, "smoke-test.txt", content, "text/plain")
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	logger.Info("Uploaded test report", zap.String("blob_name", blobName))

	downloaded, err := client.DownloadReport(ctx, blobName)
	if err != nil {
		return fmt.Errorf("failed to download report: %w", err)
	}
	if string(downloaded) != string(content) {
		return fmt.Errorf("downloaded content does not match uploaded content")
	}
	logger.Info("Round trip verified", zap.Int("bytes", len(downloaded)))

	return nil
}

func testOpenAIClient(ctx context.Context, endpoint, apiKey, deployment string, logger *zap.Logger) error {
	client, err := azure.NewOpenAIClient(endpoint, apiKey, deployment, logger)
	if err != nil {
		return fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	response, err := client.Complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("You are a concise assistant."),
		openai.UserMessage("Reply with the single word: ready"),
	})
	if err != nil {
		return fmt.Errorf("completion request failed: %w", err)
	}

	logger.Info("Received completion", zap.String("response", strings.TrimSpace(response)))
	return nil
}
