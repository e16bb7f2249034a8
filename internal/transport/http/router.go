package httpapi

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"saka/internal/cerrors"
	"saka/internal/contract"

	"github.com/gin-gonic/gin"
)

const headerInternalAPIKey = "X-Internal-API-Key"

// Decider 由编排器实现。
type Decider interface {
	DecideSync(ctx context.Context, req contract.AnalysisRequest) (contract.FinalDecision, error)
	DecideAsync(ctx context.Context, req contract.AnalysisRequest) (contract.Ack, error)
}

// TradeLister 暴露回执日志的只读查询。
type TradeLister interface {
	Recent(ctx context.Context, limit int) ([]contract.Receipt, error)
}

type Router struct {
	decider Decider
	trades  TradeLister
}

func NewRouter(decider Decider, trades TradeLister) *Router {
	return &Router{decider: decider, trades: trades}
}

func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.POST("/trigger_decision_cycle_sync", r.handleDecideSync)
	group.POST("/trigger_decision_cycle", r.handleDecideAsync)
	if r.trades != nil {
		group.GET("/trades", r.handleListTrades)
	}
}

// apiKeyAuth 校验内部共享密钥，缺失或不匹配一律 401。
func apiKeyAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(headerInternalAPIKey)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid or missing API key"})
			return
		}
		c.Next()
	}
}

func (r *Router) handleDecideSync(c *gin.Context) {
	var req contract.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body: " + err.Error()})
		return
	}
	dec, err := r.decider.DecideSync(c.Request.Context(), req)
	if err != nil {
		writeCycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dec)
}

func (r *Router) handleDecideAsync(c *gin.Context) {
	var req contract.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body: " + err.Error()})
		return
	}
	ack, err := r.decider.DecideAsync(c.Request.Context(), req)
	if err != nil {
		writeCycleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, ack)
}

func (r *Router) handleListTrades(c *gin.Context) {
	limit := 50
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	receipts, err := r.trades.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trades": receipts, "count": len(receipts)})
}

func writeCycleError(c *gin.Context, err error) {
	kind := cerrors.KindOf(err)
	c.JSON(kind.HTTPStatus(), gin.H{
		"detail": err.Error(),
		"kind":   kind.String(),
	})
}
