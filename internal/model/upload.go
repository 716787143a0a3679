package model

import "time"

// Pipeline 上传所属流水线
type Pipeline string

const (
	PipelineShift       Pipeline = "shift"
	PipelineProcurement Pipeline = "procurement"
)

// UploadLogEntry 上传审计记录（只记录元数据，不含报表内容）
type UploadLogEntry struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"requestId"`
	Pipeline   Pipeline  `json:"pipeline"`
	FileName   string    `json:"fileName"`
	ReportType string    `json:"reportType,omitempty"`
	Rows       int       `json:"rows"`   // 交班报告为展开后的记录数，采购报表为数据行数
	Status     string    `json:"status"` // ok/skipped/error
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
