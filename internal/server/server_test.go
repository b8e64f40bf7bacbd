package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdocs/invoice-extractor/internal/batch"
	"github.com/freightdocs/invoice-extractor/internal/export"
	"github.com/freightdocs/invoice-extractor/internal/extract"
)

type stubExtractor struct{}

func (stubExtractor) DocumentText(data []byte) (string, error) {
	if bytes.Equal(data, []byte("broken")) {
		return "", errors.New("not a pdf")
	}
	return string(data), nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	parser := extract.NewParser(nil, extract.TemplateA())
	driver := batch.NewDriver(nil, stubExtractor{}, parser)
	srv := NewServer(nil, driver, export.NewService(nil), nil)
	return srv.Router(32 << 20)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files[]", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestExtractInvoices(t *testing.T) {
	router := newTestRouter()

	body, contentType := multipartBody(t, map[string]string{
		"Invoice_DN26693A.pdf": "Gross Weight : 120.5 KG\nVolume Weight : 10020 KG",
		"Invoice_DN99999.pdf":  "broken",
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/extract", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		BatchID  string `json:"batch_id"`
		Template string `json:"template"`
		Records  []struct {
			Filename     string   `json:"filename"`
			ChargeableKG *float64 `json:"chargeable_kg"`
		} `json:"records"`
		Failures []struct {
			SourceID string `json:"source_id"`
			Status   string `json:"status"`
		} `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, "template-a", resp.Template)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "DN26693A", resp.Records[0].Filename)
	require.NotNil(t, resp.Records[0].ChargeableKG)
	assert.InDelta(t, 10020.0, *resp.Records[0].ChargeableKG, 1e-9)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "DN99999", resp.Failures[0].SourceID)
	assert.Equal(t, "DECODE_FAILED", resp.Failures[0].Status)
}

func TestExtractInvoices_NoFiles(t *testing.T) {
	router := newTestRouter()

	body, contentType := multipartBody(t, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/extract", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractInvoices_RejectsNonPDF(t *testing.T) {
	router := newTestRouter()

	body, contentType := multipartBody(t, map[string]string{"notes.txt": "hello"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/extract", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportInvoices_AllFailedStillDownloads(t *testing.T) {
	router := newTestRouter()

	body, contentType := multipartBody(t, map[string]string{"Invoice_DN1.pdf": "broken"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/export", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "DN1", rec.Header().Get("X-Failed-Sources"))
	assert.NotEmpty(t, rec.Body.Bytes())
}
