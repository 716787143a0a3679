package api

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"opsdash/internal/chart"
	"opsdash/internal/model"
	"opsdash/internal/procurement"
)

// SummaryResponse 单个采购报表汇总及其图表
type SummaryResponse struct {
	*model.ProcurementSummary
	Chart chart.Option `json:"chart"`
}

// SummarizeProcurement 按文件名分发并汇总采购报表
// POST /api/procurement/summaries
func (h *Handler) SummarizeProcurement(c *gin.Context) {
	files, ok := h.uploadedFiles(c)
	if !ok {
		return
	}

	inputs := make([]procurement.Input, 0, len(files))
	for _, fh := range files {
		fh := fh // per-iteration copy (go 1.21 loop variable semantics)
		inputs = append(inputs, procurement.Input{
			Name: filepath.Base(fh.Filename),
			Open: func() (*excelize.File, time.Time, error) {
				return h.openUpload(fh)
			},
		})
	}

	result, err := h.dispatcher.Summarize(c.Request.Context(), inputs)
	if err != nil {
		h.recordUpload(c, model.UploadLogEntry{
			Pipeline: model.PipelineProcurement,
			FileName: joinNames(files),
			Status:   "error",
			Message:  err.Error(),
		})
		h.fail(c, err)
		return
	}

	summaries := make([]SummaryResponse, 0, len(result.Summaries))
	for _, s := range result.Summaries {
		summaries = append(summaries, SummaryResponse{ProcurementSummary: s, Chart: chart.CounterBar(s.Counters)})
		h.recordUpload(c, model.UploadLogEntry{
			Pipeline:   model.PipelineProcurement,
			FileName:   s.FileName,
			ReportType: string(s.Type),
			Rows:       s.Rows,
			Status:     "ok",
		})
	}
	skipped := result.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	for _, name := range skipped {
		h.recordUpload(c, model.UploadLogEntry{
			Pipeline: model.PipelineProcurement,
			FileName: name,
			Status:   "skipped",
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"summaries": summaries,
		"skipped":   skipped,
	})
}

func joinNames(files []*multipart.FileHeader) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f.Filename)
	}
	return strings.Join(names, ", ")
}
