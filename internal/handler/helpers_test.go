package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"taskhive/projecthub/internal/service"
	"taskhive/projecthub/pkg/response"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"invite not found", service.ErrInviteNotFound, http.StatusNotFound, 404},
		{"project not found", service.ErrProjectNotFound, http.StatusNotFound, 404},
		{"expired", service.ErrInviteExpired, http.StatusGone, codeInviteExpired},
		{"exhausted", service.ErrInviteExhausted, http.StatusGone, codeInviteExhausted},
		{"already member", service.ErrAlreadyMember, http.StatusConflict, 409},
		{"not member", service.ErrNotMember, http.StatusForbidden, 403},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, 403},
		{"owner cannot leave", service.ErrOwnerCannotLeave, http.StatusForbidden, 403},
		{"project full", service.ErrProjectFull, http.StatusUnprocessableEntity, 422},
		{"quota exceeded", service.ErrProjectQuotaExceeded, http.StatusUnprocessableEntity, 422},
		{"validation", service.ErrInvalidMaxUses, http.StatusBadRequest, 400},
		{"wrapped validation", fmt.Errorf("change role: %w", service.ErrInvalidRole), http.StatusBadRequest, 400},
		{"unknown error is opaque", errors.New("pq: connection reset"), http.StatusInternalServerError, 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tc.err)

			require.Equal(t, tc.wantStatus, w.Code)

			var body response.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tc.wantCode, body.Code)
			if tc.wantStatus == http.StatusInternalServerError {
				// Store/internal details never leak to clients.
				require.Equal(t, "internal error", body.Message)
			}
		})
	}
}
