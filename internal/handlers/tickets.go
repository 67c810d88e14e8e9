package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"event-ticketing-backend/internal/models"
	"event-ticketing-backend/internal/storage"
	"event-ticketing-backend/internal/tickets"

	"github.com/gin-gonic/gin"
)

type TicketsHandler struct {
	engine         *tickets.Engine
	maxUploadBytes int64
}

func NewTicketsHandler(engine *tickets.Engine, maxUploadBytes int64) *TicketsHandler {
	return &TicketsHandler{
		engine:         engine,
		maxUploadBytes: maxUploadBytes,
	}
}

// AssignTickets godoc
// @Summary     Bulk-assign ticket files to approved orders
// @Description Files whose name contains a booking reference are attached to that order. The remaining files and orders are paired in order only when confirm_fallback is true; otherwise the number of such pairs is reported as fallback_available. With dry_run nothing is uploaded or written.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       files            formData file   true  "Ticket files (multiple files allowed)"
// @Param       category         formData string false "Only consider orders with this ticket category"
// @Param       confirm_fallback formData bool   false "Apply positional pairing for files without a booking reference"
// @Param       dry_run          formData bool   false "Report the plan without applying it"
// @Success     200 {object} models.AssignResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.AssignResponse "Interrupted; carries the bindings applied so far"
// @Router      /admin/tickets/assign [post]
func (h *TicketsHandler) AssignTickets(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	form := c.Request.MultipartForm
	var headers []*multipart.FileHeader
	for _, fieldName := range []string{"files", "file"} {
		if f := form.File[fieldName]; len(f) > 0 {
			headers = f
			break
		}
	}

	files, err := readFiles(headers)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read uploaded file",
			Message: err.Error(),
		})
		return
	}

	confirmFallback, err := formBool(c, "confirm_fallback")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid confirm_fallback", Message: err.Error()})
		return
	}
	dryRun, err := formBool(c, "dry_run")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid dry_run", Message: err.Error()})
		return
	}

	opts := tickets.Options{
		Category:        strings.TrimSpace(c.PostForm("category")),
		ConfirmFallback: confirmFallback,
	}

	plan, err := h.engine.Plan(c.Request.Context(), files, opts)
	if err != nil {
		respondError(c, "failed to assign tickets", err)
		return
	}

	if dryRun {
		c.JSON(http.StatusOK, planResponse(plan, confirmFallback))
		return
	}

	summary, err := h.engine.Execute(c.Request.Context(), plan, confirmFallback)
	if err != nil {
		if summary == nil {
			respondError(c, "ticket assignment interrupted", err)
			return
		}
		// Bindings applied before the interruption stay in place.
		slog.WarnContext(c.Request.Context(), "ticket assignment interrupted",
			slog.Int("assigned", len(summary.Assignments)),
			slog.String("error", err.Error()),
		)
		resp := summaryResponse(summary)
		resp.Interrupted = err.Error()
		c.JSON(StatusFor(err), resp)
		return
	}

	c.JSON(http.StatusOK, summaryResponse(summary))
}

func readFiles(headers []*multipart.FileHeader) ([]tickets.File, error) {
	files := make([]tickets.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		files = append(files, tickets.File{Filename: fh.Filename, Content: data})
	}
	return files, nil
}

func formBool(c *gin.Context, key string) (bool, error) {
	value := strings.TrimSpace(c.PostForm(key))
	if value == "" {
		value = strings.TrimSpace(c.Query(key))
	}
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}

func planResponse(plan *tickets.Plan, confirmFallback bool) models.AssignResponse {
	resp := models.AssignResponse{
		DryRun:       true,
		MatchedByRef: len(plan.Exact),
		Assignments:  make([]models.AssignmentInfo, 0, len(plan.Exact)+len(plan.Fallback)),
		Warnings:     plan.Warnings,
	}
	bindings := plan.Exact
	if confirmFallback {
		resp.AutoAssigned = len(plan.Fallback)
		bindings = append(append([]tickets.Binding(nil), plan.Exact...), plan.Fallback...)
	} else {
		resp.FallbackAvailable = len(plan.Fallback)
	}
	for _, b := range bindings {
		resp.Assignments = append(resp.Assignments, models.AssignmentInfo{
			OrderID:    b.Order.ID.String(),
			BookingRef: b.Order.BookingRef.String,
			Filename:   b.File.Filename,
			Phase:      string(b.Phase),
		})
	}
	bound := resp.MatchedByRef + resp.AutoAssigned
	resp.UnmatchedFiles = plan.TotalFiles - bound
	resp.UnmatchedOrders = plan.TotalCandidates - bound
	resp.Message = assignMessage(resp)
	return resp
}

func summaryResponse(summary *tickets.Summary) models.AssignResponse {
	resp := models.AssignResponse{
		MatchedByRef:      summary.MatchedByRef,
		AutoAssigned:      summary.AutoAssigned,
		UnmatchedFiles:    summary.UnmatchedFiles,
		UnmatchedOrders:   summary.UnmatchedOrders,
		FallbackAvailable: summary.FallbackAvailable,
		Assignments:       make([]models.AssignmentInfo, 0, len(summary.Assignments)),
		Warnings:          summary.Warnings,
	}
	for _, a := range summary.Assignments {
		resp.Assignments = append(resp.Assignments, models.AssignmentInfo{
			OrderID:    a.OrderID.String(),
			BookingRef: a.BookingRef,
			Filename:   a.Filename,
			TicketURL:  a.TicketURL,
			Phase:      string(a.Phase),
		})
	}
	for _, f := range summary.Failures {
		resp.Errors = append(resp.Errors, models.UploadErrorInfo{
			Filename: f.Filename,
			OrderID:  f.OrderID.String(),
			Error:    f.Err.Error(),
			Stage:    f.Stage,
		})
	}
	resp.Message = assignMessage(resp)
	return resp
}

func assignMessage(resp models.AssignResponse) string {
	msg := fmt.Sprintf("%d matched by booking reference, %d auto-assigned, %d unresolved",
		resp.MatchedByRef, resp.AutoAssigned, resp.UnmatchedFiles)
	if resp.FallbackAvailable > 0 {
		msg += fmt.Sprintf("; %d more can be paired by position with confirm_fallback=true", resp.FallbackAvailable)
	}
	return msg
}

// MockTicketsHandler serves files kept by the in-memory storage backend.
type MockTicketsHandler struct {
	backend *storage.MemoryBackend
}

func NewMockTicketsHandler(backend *storage.MemoryBackend) *MockTicketsHandler {
	return &MockTicketsHandler{backend: backend}
}

// GetTicket godoc
// @Summary     Download a locally stored ticket
// @Description Only available when TICKET_STORAGE=mock
// @Tags        tickets
// @Produce     octet-stream
// @Param       key path string true "Ticket key"
// @Success     200 {file} binary
// @Failure     404 {object} models.ErrorResponse
// @Router      /tickets/mock/{key} [get]
func (h *MockTicketsHandler) GetTicket(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	data, contentType, ok := h.backend.Open(key)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "ticket not found"})
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
