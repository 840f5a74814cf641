package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"sleepwell_store_v1_202610/internal/controller"
	"sleepwell_store_v1_202610/internal/service"
	"sleepwell_store_v1_202610/pkg/utils"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := utils.NewActionLimiter()
	selections := service.NewSelectionService(nil, nil, limiter, service.SelectionConfig{TTL: time.Minute}, nil)
	r := SetupRouter(&Controllers{
		Selection: controller.NewSelectionController(selections),
	}, Options{Limiter: limiter, Debounce: time.Minute})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// 第一次到达业务层 (会话不存在)，第二次被去抖拦截
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/selections/s-1/start", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/selections/s-1/start", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
