package model

import "time"

// DateLayout 日期在 API 与 CLI 中的统一格式
const DateLayout = "2006-01-02"

// ShiftRecord 单条班次记录（宽表按班次展开后的一行）
type ShiftRecord struct {
	Date        time.Time `json:"date"`
	Process     string    `json:"process"`
	Issue       string    `json:"issue"`
	ActionTaken string    `json:"actionTaken"`
	Shift       int       `json:"shift"` // 1..3
	SourceRow   int       `json:"sourceRow"`
}

// ProcessCount 按 Process 分组的计数
type ProcessCount struct {
	Process string `json:"process"`
	Count   int    `json:"count"`
}

// DateCount 按日期分组的计数（下钻第一层）
type DateCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}
