package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantLogged bool
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND", false},
		{"wrapped domain error", fmt.Errorf("find brand: %w", shared.ErrAlreadyExists), http.StatusConflict, "ALREADY_EXISTS", false},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN", false},
		{"cache invalidation", shared.ErrCacheInvalidation.Wrap(errors.New("redis down")), http.StatusInternalServerError, "CACHE_INVALIDATION_FAILED", true},
		{"unknown code", shared.NewDomainError("SOMETHING_ODD", "odd"), http.StatusInternalServerError, "SOMETHING_ODD", true},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			h := &BaseHandler{}
			r := gin.New()
			r.GET("/", func(c *gin.Context) {
				logger.SetGinLogger(c, zap.New(core))
				h.HandleError(c, tt.err)
			})

			w := perform(r, http.MethodGet, "/", "")

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w).Error.Code)
			assert.Equal(t, tt.wantLogged, logs.Len() > 0)
		})
	}
}
