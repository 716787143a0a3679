package shift

import (
	"time"

	"github.com/xuri/excelize/v2"

	"opsdash/internal/model"
	"opsdash/internal/parser"
	"opsdash/internal/reportschema"
)

// Report 一次上传的交班报告分析结果
type Report struct {
	FileName string              `json:"fileName"`
	Records  []model.ShiftRecord `json:"-"`
	Good     []model.ShiftRecord `json:"-"`
	Bad      []model.ShiftRecord `json:"bad"`
	Dropped  int                 `json:"dropped"`
	Span     *DateRange          `json:"span,omitempty"` // Good 记录的日期范围
}

// Analyze 读取交班报告工作表并完成展开与噪声过滤
func Analyze(wb *excelize.File, layout *reportschema.ShiftLayout) (*Report, error) {
	table, err := parser.ReadSheet(wb, layout.Sheet, layout.HeaderRow)
	if err != nil {
		return nil, err
	}
	return AnalyzeTable(table, layout)
}

// AnalyzeTable 对已读取的表格完成展开与噪声过滤
func AnalyzeTable(table *model.Table, layout *reportschema.ShiftLayout) (*Report, error) {
	reshaped, err := Reshape(table, layout)
	if err != nil {
		return nil, err
	}

	filtered := FilterNoise(reshaped.Records, layout.Noise())
	rep := &Report{
		Records: reshaped.Records,
		Good:    filtered.Good,
		Bad:     filtered.Bad,
		Dropped: reshaped.Dropped,
	}
	if span, ok := Span(filtered.Good); ok {
		rep.Span = &span
	}
	return rep, nil
}

// Counts 范围内的 Process 计数；r 为空时使用全部记录
func (r *Report) Counts(rng *DateRange) []model.ProcessCount {
	return CountByProcess(r.Good, rng)
}

// Timeline 指定 Process 的按日计数
func (r *Report) Timeline(process string, rng *DateRange) []model.DateCount {
	return CountByDate(r.Good, rng, process)
}

// Drill 指定 Process 与日期的记录
func (r *Report) Drill(process string, date time.Time) []model.ShiftRecord {
	return RecordsFor(r.Good, process, date)
}

// Range 解析报告上的可选起止日期，缺省端取报告覆盖范围
func (r *Report) Range(start, end *time.Time) (*DateRange, error) {
	return ResolveRange(r.Span, start, end)
}
