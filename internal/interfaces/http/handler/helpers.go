package handler

import (
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/bookkeeping/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DateLayout is the wire format of every ledger date
const DateLayout = "2006-01-02"

// pathID parses a uuid path parameter, answering 400 when it is malformed
func (h *BaseHandler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeValidation, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// pathDate parses a YYYY-MM-DD path parameter
func (h *BaseHandler) pathDate(c *gin.Context, name string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, c.Param(name))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeValidation, "Invalid "+name+", expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

// parseDate parses an already validated date; an empty value yields today
func parseDate(s string) time.Time {
	if s == "" {
		return shared.Today()
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return shared.Today()
	}
	return t
}

// optionalDate parses an already validated optional date
func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// parseID parses an already validated uuid
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// optionalID parses an already validated optional uuid
func optionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return nil
	}
	return &id
}

// listFilter converts list query parameters to a repository filter
func listFilter(req dto.ListRequest) shared.Filter {
	req.Defaults()
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		From:     optionalDate(req.From),
		To:       optionalDate(req.To),
	}
}

// createdBy names the caller recorded against a write
func createdBy(c *gin.Context) string {
	if user := middleware.GetJWTUser(c); user != "" {
		return user
	}
	return "system"
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
