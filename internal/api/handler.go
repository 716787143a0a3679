package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"opsdash/internal/logger"
	"opsdash/internal/middleware"
	"opsdash/internal/parser"
	"opsdash/internal/procurement"
	"opsdash/internal/reportschema"
	"opsdash/internal/session"
	"opsdash/internal/shift"
	"opsdash/internal/store"
)

// Version 服务版本
const Version = "1.0.0"

// Options 处理器依赖
type Options struct {
	Registry    *reportschema.Registry
	Sessions    *session.Store
	Uploads     *store.Store // 可为空，为空时不记录上传审计
	Logger      *zap.Logger
	MaxUploadMB int64
	TempDir     string
}

// Handler API 处理器
type Handler struct {
	registry   *reportschema.Registry
	sessions   *session.Store
	uploads    *store.Store
	dispatcher *procurement.Dispatcher
	logger     *zap.Logger
	maxUpload  int64
	tempDir    string
	startedAt  time.Time
}

// NewHandler 创建 API 处理器
func NewHandler(opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxMB := opts.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 32
	}
	return &Handler{
		registry:   opts.Registry,
		sessions:   opts.Sessions,
		uploads:    opts.Uploads,
		dispatcher: procurement.NewDispatcher(opts.Registry, log),
		logger:     log,
		maxUpload:  maxMB << 20,
		tempDir:    opts.TempDir,
		startedAt:  time.Now(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	router.GET("/uploads", h.ListUploads)

	// 交班报告
	router.POST("/shift/reports", h.UploadShiftReport)
	router.GET("/shift/reports/:id", h.GetShiftReport)
	router.DELETE("/shift/reports/:id", h.DeleteShiftReport)
	router.GET("/shift/reports/:id/counts", h.ShiftCounts)
	router.GET("/shift/reports/:id/timeline", h.ShiftTimeline)
	router.GET("/shift/reports/:id/records", h.ShiftRecords)

	// 采购报表
	router.POST("/procurement/summaries", h.SummarizeProcurement)
}

// requestLogger 带请求 ID 的日志器
func (h *Handler) requestLogger(c *gin.Context) *zap.Logger {
	return logger.WithContext(c.Request.Context(), h.logger)
}

// fail 统一错误响应：按错误类型选择状态码
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.requestLogger(c).Error("request failed", zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{
		"error":      err.Error(),
		"request_id": middleware.GetRequestID(c),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      msg,
		"request_id": middleware.GetRequestID(c),
	})
}

func statusFor(err error) int {
	var (
		schemaErr  *parser.SchemaError
		missingErr *parser.MissingColumnError
		dateErr    *shift.DateError
	)
	switch {
	case errors.Is(err, session.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &schemaErr),
		errors.As(err, &missingErr),
		errors.As(err, &dateErr),
		errors.Is(err, parser.ErrSheetNotFound),
		errors.Is(err, parser.ErrEmptySheet),
		errors.Is(err, errUnreadableWorkbook):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
