package api

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"opsdash/internal/middleware"
	"opsdash/internal/model"
)

var (
	errUnreadableWorkbook = errors.New("unreadable workbook")
	errUploadTooLarge     = errors.New("upload exceeds size limit")
)

var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// uploadedFiles 解析 multipart 表单中的 file 字段
func (h *Handler) uploadedFiles(c *gin.Context) ([]*multipart.FileHeader, bool) {
	if c.Request.ContentLength > h.maxUpload {
		h.fail(c, errUploadTooLarge)
		return nil, false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, errUploadTooLarge)
			return nil, false
		}
		badRequest(c, "invalid multipart form")
		return nil, false
	}

	files := form.File["file"]
	if len(files) == 0 {
		badRequest(c, "no file uploaded")
		return nil, false
	}
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !allowedExtensions[ext] {
			badRequest(c, fmt.Sprintf("%s: only .xlsx and .xlsm workbooks are accepted", f.Filename))
			return nil, false
		}
	}
	return files, true
}

// openUpload 将上传内容写入临时文件，读取修改时间并打开工作簿，随后立即删除临时文件
func (h *Handler) openUpload(fh *multipart.FileHeader) (*excelize.File, time.Time, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(h.tempDir, "opsdash_upload_*"+filepath.Ext(fh.Filename))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.ReadFrom(src); err != nil {
		tmp.Close()
		return nil, time.Time{}, fmt.Errorf("failed to save upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to save upload: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to stat upload: %w", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", errUnreadableWorkbook, err)
	}
	return wb, info.ModTime(), nil
}

// recordUpload 写入上传审计；失败只记录日志
func (h *Handler) recordUpload(c *gin.Context, e model.UploadLogEntry) {
	if h.uploads == nil {
		return
	}
	e.RequestID = middleware.GetRequestID(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if err := h.uploads.RecordUpload(ctx, &e); err != nil {
		h.requestLogger(c).Warn("failed to record upload", zap.Error(err))
	}
}
