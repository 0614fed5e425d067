package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-marks-api/internal/dto"
	"github.com/noah-isme/exam-marks-api/internal/models"
	"github.com/noah-isme/exam-marks-api/pkg/response"
)

type markService interface {
	AddMark(ctx context.Context, req dto.MarkRequest) (*models.StudentMark, error)
	UpdateMark(ctx context.Context, id string, req dto.MarkRequest) (*models.StudentMark, error)
	GetMark(ctx context.Context, id string) (*models.StudentMark, error)
	ListAllMarks(ctx context.Context) ([]models.StudentMark, error)
}

type browseService interface {
	Browse(ctx context.Context, filter dto.BrowseFilter) ([]dto.MarkListItem, *models.Pagination, error)
	Groups(ctx context.Context, class string) ([]dto.ClassGroup, error)
}

type exportService interface {
	ExportCSV(ctx context.Context) ([]byte, error)
}

// MarkHandler serves the admin endpoints.
type MarkHandler struct {
	marks   markService
	browse  browseService
	exports exportService
	now     func() time.Time
}

// NewMarkHandler constructs a MarkHandler.
func NewMarkHandler(marks markService, browse browseService, exports exportService) *MarkHandler {
	return &MarkHandler{marks: marks, browse: browse, exports: exports, now: time.Now}
}

// AddMark godoc
// @Summary Add student marks
// @Description Store the marks of one student for one exam. A second entry for the same register number and exam is rejected.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.MarkRequest true "Marks payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/add-mark [post]
func (h *MarkHandler) AddMark(c *gin.Context) {
	var req dto.MarkRequest
	if !bindJSON(c, &req, "invalid marks payload") {
		return
	}
	mark, err := h.marks.AddMark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Mark added successfully", mark)
}

// UpdateMark godoc
// @Summary Update student marks
// @Description Overwrite every field of an existing record
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param payload body dto.MarkRequest true "Marks payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/update-mark/{id} [put]
func (h *MarkHandler) UpdateMark(c *gin.Context) {
	var req dto.MarkRequest
	if !bindJSON(c, &req, "invalid marks payload") {
		return
	}
	mark, err := h.marks.UpdateMark(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Mark updated successfully", mark)
}

// ListAll godoc
// @Summary List all records
// @Description Every record, most recently updated first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.StudentMark
// @Failure 500 {object} response.Envelope
// @Router /admin/all-marks [get]
func (h *MarkHandler) ListAll(c *gin.Context) {
	marks, err := h.marks.ListAllMarks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, marks)
}

// Get godoc
// @Summary Load a record
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/marks/{id} [get]
func (h *MarkHandler) Get(c *gin.Context) {
	mark, err := h.marks.GetMark(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mark, nil)
}

// Browse godoc
// @Summary Browse records
// @Description Filter by class (Arabic or Roman numerals) and page through results
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param class query string false "Class filter"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /admin/browse [get]
func (h *MarkHandler) Browse(c *gin.Context) {
	var filter dto.BrowseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		filter = dto.BrowseFilter{Class: c.Query("class")}
	}
	items, pagination, err := h.browse.Browse(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Classes godoc
// @Summary Records grouped by class
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param class query string false "Class filter"
// @Success 200 {object} response.Envelope
// @Router /admin/classes [get]
func (h *MarkHandler) Classes(c *gin.Context) {
	groups, err := h.browse.Groups(c.Request.Context(), c.Query("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil, map[string]interface{}{"groups": len(groups)})
}

// ExportCSV godoc
// @Summary Export all marks as CSV
// @Tags Admin
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Router /admin/export.csv [get]
func (h *MarkHandler) ExportCSV(c *gin.Context) {
	payload, err := h.exports.ExportCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := "marks_" + h.now().UTC().Format("20060102") + ".csv"
	response.Attachment(c, filename, "text/csv; charset=utf-8", payload)
}
