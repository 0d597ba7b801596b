package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/bookkeeping/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.NewNotFoundError("bank"), http.StatusNotFound, dto.ErrCodeNotFound},
		{"validation", shared.NewValidationError("amount must be positive"), http.StatusBadRequest, dto.ErrCodeValidation},
		{"amount exceeds balance", shared.ErrAmountExceedsBalance, http.StatusBadRequest, dto.ErrCodeAmountExceedsBalance},
		{"duplicate cash entry", shared.ErrDuplicateCashEntry, http.StatusBadRequest, dto.ErrCodeDuplicateCashEntry},
		{"locked", shared.ErrLocked, http.StatusLocked, dto.ErrCodeLocked},
		{"already paid", shared.ErrAlreadyPaid, http.StatusConflict, dto.ErrCodeAlreadyPaid},
		{"infrastructure", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h handler.BaseHandler
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.NotContains(t, env.Error.Message, "connection refused")
		})
	}
}

func TestBindingFailures(t *testing.T) {
	s := newServer(t)

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/banks", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidJSON)
	})

	t.Run("field validation reports details", func(t *testing.T) {
		code, env := s.do(t, http.MethodPost, "/banks", map[string]any{"opening_balance": "10"})

		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
		require.NotEmpty(t, env.Error.Details)
		assert.Equal(t, "name", env.Error.Details[0].Field)
	})

	t.Run("malformed path id", func(t *testing.T) {
		code, env := s.do(t, http.MethodGet, "/banks/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})
}
