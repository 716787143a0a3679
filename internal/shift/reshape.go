package shift

import (
	"fmt"
	"time"

	"opsdash/internal/model"
	"opsdash/internal/parser"
	"opsdash/internal/reportschema"
)

// DateError 日期单元格无法解析
type DateError struct {
	Row   int
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("row %d: invalid date %q: %v", e.Row, e.Value, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

// Reshaped 宽表展开结果
type Reshaped struct {
	PerShift [][]model.ShiftRecord // 每个班次一张表，结构相同
	Records  []model.ShiftRecord   // 按班次顺序纵向拼接
	Dropped  int                   // 因 Process 为空或缺少日期而丢弃的记录数
}

// Reshape 将三班次宽表展开为长表
//
// 表头先按声明逐列校验；日期列向下填充；Process 为空的班次记录被丢弃。
func Reshape(table *model.Table, layout *reportschema.ShiftLayout) (*Reshaped, error) {
	want := parser.DisambiguateColumns(layout.Columns)
	if err := parser.MatchHeader(table.Sheet, table.Columns, want); err != nil {
		return nil, err
	}

	dateIdx := -1
	for i, c := range layout.Columns {
		if c == layout.DateColumn {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return nil, &parser.MissingColumnError{Sheet: table.Sheet, Column: layout.DateColumn}
	}

	dates, err := forwardFillDates(table, dateIdx)
	if err != nil {
		return nil, err
	}

	out := &Reshaped{
		PerShift: make([][]model.ShiftRecord, layout.Shifts),
	}
	for s := 1; s <= layout.Shifts; s++ {
		pIdx, iIdx, aIdx := layout.ShiftColumns(s)
		records := make([]model.ShiftRecord, 0, len(table.Rows))
		for i, row := range table.Rows {
			process := cell(row, pIdx)
			// 按班次丢弃：同一行其他班次的记录保留，日期已在丢弃前向下填充
			if process == "" || dates[i].IsZero() {
				out.Dropped++
				continue
			}
			records = append(records, model.ShiftRecord{
				Date:        dates[i],
				Process:     process,
				Issue:       cell(row, iIdx),
				ActionTaken: cell(row, aIdx),
				Shift:       s,
				SourceRow:   table.SourceRow(i),
			})
		}
		out.PerShift[s-1] = records
		out.Records = append(out.Records, records...)
	}

	return out, nil
}

// forwardFillDates 日期只在每天第一行填写，后续行沿用上一个非空日期
func forwardFillDates(table *model.Table, idx int) ([]time.Time, error) {
	dates := make([]time.Time, len(table.Rows))
	var last time.Time
	for i, row := range table.Rows {
		if v := cell(row, idx); v != "" {
			d, err := parser.ParseDate(v)
			if err != nil {
				return nil, &DateError{Row: table.SourceRow(i), Value: v, Err: err}
			}
			last = d
		}
		dates[i] = last
	}
	return dates, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
