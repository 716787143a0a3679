package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"opsdash/internal/chart"
	"opsdash/internal/model"
	"opsdash/internal/shift"
)

// ShiftReportResponse 交班报告分析响应
type ShiftReportResponse struct {
	ID       string               `json:"id"`
	FileName string               `json:"fileName"`
	Records  int                  `json:"records"`
	Good     int                  `json:"good"`
	Dropped  int                  `json:"dropped"`
	Span     *shift.DateRange     `json:"span,omitempty"`
	Counts   []model.ProcessCount `json:"counts"`
	Bad      []model.ShiftRecord  `json:"bad"`
	Chart    chart.Option         `json:"chart"`
}

func newShiftReportResponse(id string, rep *shift.Report) ShiftReportResponse {
	counts := rep.Counts(nil)
	bad := rep.Bad
	if bad == nil {
		bad = []model.ShiftRecord{}
	}
	return ShiftReportResponse{
		ID:       id,
		FileName: rep.FileName,
		Records:  len(rep.Records),
		Good:     len(rep.Good),
		Dropped:  rep.Dropped,
		Span:     rep.Span,
		Counts:   counts,
		Bad:      bad,
		Chart:    chart.ProcessBar(counts),
	}
}

// UploadShiftReport 上传交班报告并分析
// POST /api/shift/reports
func (h *Handler) UploadShiftReport(c *gin.Context) {
	files, ok := h.uploadedFiles(c)
	if !ok {
		return
	}
	if len(files) != 1 {
		badRequest(c, "exactly one shift report must be uploaded")
		return
	}
	fh := files[0]
	name := filepath.Base(fh.Filename)
	entry := model.UploadLogEntry{Pipeline: model.PipelineShift, FileName: name}

	wb, _, err := h.openUpload(fh)
	if err != nil {
		entry.Status, entry.Message = "error", err.Error()
		h.recordUpload(c, entry)
		h.fail(c, err)
		return
	}
	defer wb.Close()

	rep, err := shift.Analyze(wb, &h.registry.Shift)
	if err != nil {
		entry.Status, entry.Message = "error", err.Error()
		h.recordUpload(c, entry)
		h.fail(c, fmt.Errorf("%s: %w", name, err))
		return
	}
	rep.FileName = name

	id := h.sessions.Put(rep)
	entry.Status, entry.Rows = "ok", len(rep.Records)
	h.recordUpload(c, entry)

	h.requestLogger(c).Info("shift report analyzed",
		zap.String("report_id", id),
		zap.String("file", name),
		zap.Int("records", len(rep.Records)),
		zap.Int("bad", len(rep.Bad)),
		zap.Int("dropped", rep.Dropped),
	)
	c.JSON(http.StatusCreated, newShiftReportResponse(id, rep))
}

// GetShiftReport 获取已分析的报告
// GET /api/shift/reports/:id
func (h *Handler) GetShiftReport(c *gin.Context) {
	id := c.Param("id")
	rep, err := h.sessions.Get(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newShiftReportResponse(id, rep))
}

// DeleteShiftReport 丢弃已分析的报告
// DELETE /api/shift/reports/:id
func (h *Handler) DeleteShiftReport(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ShiftCounts 日期范围内的 Process 计数
// GET /api/shift/reports/:id/counts?start=&end=
func (h *Handler) ShiftCounts(c *gin.Context) {
	rep, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	rng, err := rangeQuery(c, rep)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	counts := rep.Counts(rng)
	c.JSON(http.StatusOK, gin.H{
		"range":  rng,
		"counts": counts,
		"chart":  chart.ProcessBar(counts),
	})
}

// ShiftTimeline 下钻第一层：指定 Process 的按日计数
// GET /api/shift/reports/:id/timeline?process=&start=&end=
func (h *Handler) ShiftTimeline(c *gin.Context) {
	rep, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	process := c.Query("process")
	if process == "" {
		badRequest(c, "process is required")
		return
	}
	rng, err := rangeQuery(c, rep)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	counts := rep.Timeline(process, rng)
	c.JSON(http.StatusOK, gin.H{
		"process": process,
		"range":   rng,
		"counts":  counts,
		"chart":   chart.DateLine(counts),
	})
}

// ShiftRecords 下钻第二层：指定 Process 与日期的记录
// GET /api/shift/reports/:id/records?process=&date=
func (h *Handler) ShiftRecords(c *gin.Context) {
	rep, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	process := c.Query("process")
	if process == "" {
		badRequest(c, "process is required")
		return
	}
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid date: %v", err))
		return
	}

	records := rep.Drill(process, date)
	c.JSON(http.StatusOK, gin.H{
		"process": process,
		"date":    date.Format(model.DateLayout),
		"records": records,
	})
}

// rangeQuery 解析 start/end；缺省端取报告覆盖的日期范围
func rangeQuery(c *gin.Context, rep *shift.Report) (*shift.DateRange, error) {
	var start, end *time.Time
	if v := c.Query("start"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return nil, fmt.Errorf("invalid start: %w", err)
		}
		start = &t
	}
	if v := c.Query("end"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return nil, fmt.Errorf("invalid end: %w", err)
		}
		end = &t
	}
	return rep.Range(start, end)
}

// parseDateParam 接受 2006-01-02 或图表类目格式
func parseDateParam(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(model.DateLayout, s); err == nil {
		return t, nil
	}
	return chart.ParseCategory(s)
}
