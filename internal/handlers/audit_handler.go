package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/models"
	"github.com/gin-gonic/gin"
)

const timeFormat = time.RFC3339

type AuditReader interface {
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
}

type AuditHandler struct {
	audit AuditReader
}

func NewAuditHandler(audit AuditReader) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAuditLogs returns the most recent audit entries, newest first.
// GET /api/audit-logs?page=&per_page= (authenticated)
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	var pg dto.PaginationRequest
	if err := c.ShouldBindQuery(&pg); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	page := pg.Page
	if page < 1 {
		page = 1
	}
	perPage := pg.PerPage
	if perPage < 1 {
		perPage = 20
	}

	entries, err := h.audit.List(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.AuditLogDTO, 0, len(entries))
	for i := range entries {
		out = append(out, auditToDTO(&entries[i]))
	}
	c.JSON(http.StatusOK, out)
}

func auditToDTO(e *models.AuditLog) dto.AuditLogDTO {
	d := dto.AuditLogDTO{
		ID:        e.ID,
		Action:    e.Action,
		ModelName: e.ModelName,
		RecordID:  e.RecordID,
		CreatedAt: e.CreatedAt.Format(timeFormat),
	}
	if e.UserID.Valid {
		d.UserID = int(e.UserID.Int32)
	}
	if e.IPAddress.Valid {
		d.IPAddress = e.IPAddress.String
	}
	if e.Details.Valid {
		d.Details = e.Details.String
	}
	return d
}
