// Package server exposes the extractor over HTTP: upload invoices, get the
// parsed records back as JSON or as the XLSX summary workbook.
package server

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/freightdocs/invoice-extractor/constants"
	"github.com/freightdocs/invoice-extractor/internal/batch"
	"github.com/freightdocs/invoice-extractor/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BatchSaver is the optional persistence hook (nil disables history).
type BatchSaver interface {
	SaveBatch(ctx context.Context, res batch.Result) error
}

type Server struct {
	logger   *slog.Logger
	driver   *batch.Driver
	exporter *export.Service
	saver    BatchSaver
}

func NewServer(logger *slog.Logger, driver *batch.Driver, exporter *export.Service, saver BatchSaver) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger, driver: driver, exporter: exporter, saver: saver}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(maxUploadBytes int64) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = maxUploadBytes

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "freight-invoice-extractor",
		})
	})

	api := router.Group("/api/v1")
	{
		invoices := api.Group("/invoices")
		{
			invoices.POST("/extract", s.ExtractInvoices)
			invoices.POST("/export", s.ExportInvoices)
		}
	}
	return router
}

// ExtractInvoices handles POST /api/v1/invoices/extract: parse the uploaded
// PDFs and return records plus per-document failures as JSON.
func (s *Server) ExtractInvoices(c *gin.Context) {
	sources, ok := s.readUploads(c)
	if !ok {
		return
	}

	res := s.driver.Run(c.Request.Context(), sources)
	s.persist(c, res)

	c.JSON(http.StatusOK, gin.H{
		"batch_id": res.BatchID.String(),
		"template": res.Template,
		"records":  res.Records,
		"failures": res.Failures,
		"stats":    res.Stats,
	})
}

// ExportInvoices handles POST /api/v1/invoices/export: parse the uploads and
// stream back the Invoice_Summary workbook. Failed sources are reported in a
// response header; a batch with zero successes still downloads a header-only
// sheet.
func (s *Server) ExportInvoices(c *gin.Context) {
	sources, ok := s.readUploads(c)
	if !ok {
		return
	}

	res := s.driver.Run(c.Request.Context(), sources)
	s.persist(c, res)

	data, err := s.exporter.WriteXLSX(res.Records)
	if err != nil {
		s.logger.Error("server.export.failed", "batch_id", res.BatchID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}

	if len(res.Failures) > 0 {
		ids := make([]string, 0, len(res.Failures))
		for _, f := range res.Failures {
			ids = append(ids, f.SourceID)
		}
		c.Header("X-Failed-Sources", strings.Join(ids, ","))
	}
	c.Header("Content-Disposition", `attachment; filename="Invoice_Summary.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// readUploads collects the multipart "files[]" parts into batch sources.
func (s *Server) readUploads(c *gin.Context) ([]batch.Source, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse multipart form"})
		return nil, false
	}
	files := form.File["files[]"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return nil, false
	}

	sources := make([]batch.Source, 0, len(files))
	for _, fh := range files {
		if !constants.IsAllowedExt(filepath.Ext(fh.Filename)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type: " + fh.Filename})
			return nil, false
		}
		data, err := readFileHeader(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload: " + fh.Filename})
			return nil, false
		}
		sources = append(sources, batch.Source{Filename: fh.Filename, Data: data})
	}
	return sources, true
}

func (s *Server) persist(c *gin.Context, res batch.Result) {
	if s.saver == nil {
		return
	}
	if err := s.saver.SaveBatch(c.Request.Context(), res); err != nil {
		// History is best-effort; the extraction result still goes out.
		s.logger.Error("server.persist.failed", "batch_id", res.BatchID, "error", err)
	}
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
