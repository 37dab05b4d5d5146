package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_UploadErrorsAlwaysCarryStatusAndMessage(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	router, _ := setupRouter(t, 1024)

	properties.Property("Rejected uploads return 4xx with error status and a non-empty message", prop.ForAll(
		func(extension string, content string) bool {
			if extension == "" || strings.ContainsAny(extension, "./\\") {
				return true
			}

			body, contentType := multipartUpload(t, "file."+extension, []byte(content))
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code == http.StatusOK {
				// Only well-formed medical text on an allowed extension passes
				return strings.EqualFold(extension, "txt")
			}
			if w.Code < 400 || w.Code >= 500 {
				t.Logf("expected 4xx, got %d", w.Code)
				return false
			}

			var resp map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Logf("error response is not JSON: %v", err)
				return false
			}
			if resp["status"] != "error" {
				t.Logf("expected error status, got %v", resp["status"])
				return false
			}
			message, ok := resp["message"].(string)
			if !ok || message == "" {
				t.Log("error response must carry a non-empty message")
				return false
			}
			return true
		},
		gen.AlphaString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestProperty_OversizedUploadsNeverSucceed(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	const maxSize = 256
	router, _ := setupRouter(t, maxSize)

	properties.Property("Any payload over the limit is rejected with the size message", prop.ForAll(
		func(overshoot int) bool {
			if overshoot < 1 || overshoot > 4096 {
				return true
			}

			payload := bytes.Repeat([]byte("a"), maxSize+overshoot)
			body, contentType := multipartUpload(t, "report.txt", payload)
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Logf("expected 400, got %d", w.Code)
				return false
			}

			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				return false
			}
			return resp["message"] == "File too large"
		},
		gen.IntRange(1, 4096),
	))

	properties.TestingRun(t)
}
