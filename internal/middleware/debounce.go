package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sleepwell_store_v1_202610/pkg/utils"
)

// ==================== 去抖中间件 ====================

// Debounce 同一会话在冷却期内重复触发同一动作时直接返回 429
// 按路径参数 :id 维度限流
//
// 使用示例:
//
//	router.POST("/api/selections/:id/start",
//	    middleware.Debounce(limiter, "start", time.Second),
//	    controller.Restart,
//	)
func Debounce(limiter *utils.ActionLimiter, action string, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" || interval <= 0 {
			c.Next()
			return
		}

		result := limiter.Check(utils.SessionActionKey(id, action), interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after_ms": result.RetryAfter.Milliseconds(),
					"action":         action,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	if d < time.Second {
		return "操作过于频繁，请稍后重试"
	}
	return fmt.Sprintf("操作过于频繁，请 %d 秒后重试", int(d.Seconds()+0.5))
}
