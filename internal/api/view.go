package api

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"opsdash/internal/model"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templateFuncs = template.FuncMap{
	"fmtDate": func(t time.Time) string { return t.Format(model.DateLayout) },
}

// LoadTemplates 解析内置页面模板
func LoadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html"))
}

// RegisterViews 注册页面路由；router 需已通过 SetHTMLTemplate 加载 LoadTemplates
func (h *Handler) RegisterViews(router gin.IRoutes) {
	router.GET("/", h.IndexView)
	router.GET("/reports/shift/:id", h.ShiftReportView)
}

// IndexView 上传页面
func (h *Handler) IndexView(c *gin.Context) {
	c.HTML(http.StatusOK, "index", nil)
}

// ShiftReportView 交班报告页面
func (h *Handler) ShiftReportView(c *gin.Context) {
	id := c.Param("id")
	rep, err := h.sessions.Get(id)
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}
	c.HTML(http.StatusOK, "shift_report", newShiftReportResponse(id, rep))
}
