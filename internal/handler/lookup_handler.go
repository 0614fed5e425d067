package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-marks-api/internal/dto"
	"github.com/noah-isme/exam-marks-api/internal/models"
	"github.com/noah-isme/exam-marks-api/pkg/response"
)

type lookupService interface {
	CheckMark(ctx context.Context, req dto.CheckMarkRequest) (*dto.CheckMarkResponse, error)
}

type reportService interface {
	Cards(ctx context.Context, req dto.CheckMarkRequest) (*dto.ReportResponse, error)
	PDF(ctx context.Context, req dto.CheckMarkRequest) (string, []byte, error)
}

// LookupHandler serves the public result endpoints.
type LookupHandler struct {
	lookup  lookupService
	reports reportService
}

// NewLookupHandler constructs a LookupHandler.
func NewLookupHandler(lookup lookupService, reports reportService) *LookupHandler {
	return &LookupHandler{lookup: lookup, reports: reports}
}

// CheckMark godoc
// @Summary Look up results
// @Description Find every record of a register number. A miss returns found=false.
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.CheckMarkRequest true "Lookup payload"
// @Success 200 {object} dto.CheckMarkResponse
// @Failure 400 {object} response.Envelope
// @Router /user/check-mark [post]
func (h *LookupHandler) CheckMark(c *gin.Context) {
	var req dto.CheckMarkRequest
	if !bindJSON(c, &req, "invalid lookup payload") {
		return
	}
	res, err := h.lookup.CheckMark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}

// Report godoc
// @Summary Report cards
// @Description Results with grades, totals and pass status
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.CheckMarkRequest true "Lookup payload"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} response.Envelope
// @Router /user/report [post]
func (h *LookupHandler) Report(c *gin.Context) {
	var req dto.CheckMarkRequest
	if !bindJSON(c, &req, "invalid lookup payload") {
		return
	}
	res, err := h.reports.Cards(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}

// ReportPDF godoc
// @Summary Download report cards
// @Tags Results
// @Accept json
// @Produce application/pdf
// @Param payload body dto.CheckMarkRequest true "Lookup payload"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /user/report.pdf [post]
func (h *LookupHandler) ReportPDF(c *gin.Context) {
	var req dto.CheckMarkRequest
	if !bindJSON(c, &req, "invalid lookup payload") {
		return
	}
	filename, payload, err := h.reports.PDF(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, "application/pdf", payload)
}

// ExamTypes godoc
// @Summary Accepted exam types
// @Tags Results
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exam-types [get]
func (h *LookupHandler) ExamTypes(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.ExamTypes, nil)
}
