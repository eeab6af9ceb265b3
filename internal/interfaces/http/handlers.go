package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billedapp/billflow/internal/billlist"
	"github.com/billedapp/billflow/internal/domain/entity"
	"github.com/billedapp/billflow/internal/export"
	"github.com/billedapp/billflow/internal/identity"
	"github.com/billedapp/billflow/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxUpdateBodyBytes caps the PUT body; a bill record is a few hundred bytes.
const maxUpdateBodyBytes = 1 << 20

// Handlers contains all HTTP request handlers
type Handlers struct {
	pipeline *billlist.Pipeline
	store    store.Store
	exporter *export.ExcelExporter
	resolver identity.Resolver
	logger   Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	pipeline *billlist.Pipeline,
	s store.Store,
	exporter *export.ExcelExporter,
	resolver identity.Resolver,
	logger Logger,
) *Handlers {
	return &Handlers{
		pipeline: pipeline,
		store:    s,
		exporter: exporter,
		resolver: resolver,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// CreateBillRequest opens a new bill record.
type CreateBillRequest struct {
	Email    string `json:"email" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ListBills handles GET /api/v1/bills: the employee view, sorted newest
// first with display dates and statuses.
func (h *Handlers) ListBills(c *gin.Context) {
	views, err := h.pipeline.Fetch(c.Request.Context())
	if err != nil {
		h.logger.Errorw("Failed to list bills", "error", err)
		c.JSON(errorStatus(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    views,
	})
}

// ListDashboardBills handles GET /api/v1/dashboard/bills: the raw snapshot
// for the admin buckets, optionally narrowed to one status, always without
// the excluded identities.
func (h *Handlers) ListDashboardBills(c *gin.Context) {
	bills, err := h.store.Bills().List(c.Request.Context())
	if err != nil {
		h.logger.Errorw("Failed to list dashboard bills", "error", err)
		c.JSON(errorStatus(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	statusParam := c.Query("status")

	excluded := make(map[string]bool)
	if h.resolver != nil {
		for _, email := range h.resolver.ExcludedEmails() {
			excluded[email] = true
		}
	}

	filtered := []entity.Bill{}
	for _, bill := range bills {
		if excluded[bill.Email] {
			continue
		}
		if statusParam != "" && bill.Status != entity.Status(statusParam) {
			continue
		}
		filtered = append(filtered, bill)
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    filtered,
	})
}

// CreateBill handles POST /api/v1/bills: opens a record for a submitted
// supporting document and returns its key and document URL.
func (h *Handlers) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("Invalid create request", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	result, err := h.store.Bills().Create(c.Request.Context(), store.CreateOp{
		Email:    req.Email,
		FileName: req.FileName,
	})
	if err != nil {
		h.logger.Errorw("Failed to create bill", "error", err)
		c.JSON(errorStatus(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    result,
	})
}

// UpdateBill handles PUT /api/v1/bills/:id. The body is the full bill
// record as JSON; it is handed to the store verbatim, keyed by the path ID.
func (h *Handlers) UpdateBill(c *gin.Context) {
	id := c.Param("id")

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUpdateBodyBytes))
	if err != nil {
		h.logger.Errorw("Failed to read update body", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	bill, err := h.store.Bills().Update(c.Request.Context(), store.UpdateOp{
		Data:     string(body),
		Selector: id,
	})
	if err != nil {
		h.logger.Errorw("Failed to update bill", "id", id, "error", err)
		c.JSON(errorStatus(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    bill,
	})
}

// ExportBills handles GET /api/v1/bills/export: the full snapshot as an
// Excel workbook for accounting handoff.
func (h *Handlers) ExportBills(c *gin.Context) {
	bills, err := h.store.Bills().List(c.Request.Context())
	if err != nil {
		h.logger.Errorw("Failed to list bills for export", "error", err)
		c.JSON(errorStatus(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	buf, err := h.exporter.Export(bills)
	if err != nil {
		h.logger.Errorw("Failed to export bills", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "export failed",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bills.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// errorStatus maps a store rejection to its HTTP status, 500 for anything
// without one.
func errorStatus(err error) int {
	var transportErr *store.TransportError
	if errors.As(err, &transportErr) && transportErr.Status != 0 {
		return transportErr.Status
	}
	return http.StatusInternalServerError
}
