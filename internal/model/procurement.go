package model

import "time"

// ReportType 采购报表类型
type ReportType string

const (
	ReportTypePRToPO         ReportType = "pr_to_po"
	ReportTypePOException    ReportType = "po_exception"
	ReportTypePOReassignment ReportType = "po_reassignment"
	ReportTypeVendor         ReportType = "vendor"
)

// Counter 具名计数
type Counter struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ProcurementSummary 单个采购报表文件的汇总
type ProcurementSummary struct {
	Type       ReportType `json:"type"`
	Label      string     `json:"label"`
	FileName   string     `json:"fileName"`
	ModifiedAt time.Time  `json:"modifiedAt"`
	Rows       int        `json:"rows"` // 数据行数
	Counters   []Counter  `json:"counters"`
	Detail     *Table     `json:"detail,omitempty"` // 计数为 0 时为空
}

// Count 按名称读取计数，不存在时返回 0
func (s *ProcurementSummary) Count(name string) int {
	for _, c := range s.Counters {
		if c.Name == name {
			return c.Value
		}
	}
	return 0
}
