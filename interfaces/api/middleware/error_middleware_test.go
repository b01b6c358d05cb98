package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/pkg/apperror"
)

func TestErrorHandlerCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"body too large", fiber.ErrRequestEntityTooLarge, http.StatusRequestEntityTooLarge, apperror.CodeFileTooLarge},
		{"bad request", fiber.ErrBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{"route not found", fiber.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"service error", apperror.ErrDuplicateEmail, http.StatusConflict, apperror.CodeDuplicateEmail},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var out struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.False(t, out.Success)
			assert.Equal(t, tt.wantCode, out.Error.Code)
		})
	}
}
