package procurement

import (
	"opsdash/internal/model"
	"opsdash/internal/parser"
	"opsdash/internal/reportschema"
)

// 状态字面量
const (
	StatusConvertToPO   = "Convert to PO"
	StatusPONotReleased = "PO Not Released"
	StatusCompleted     = "Completed"
	StatusPRExceptioned = "PR Exceptioned"
)

// Summarize 按声明计算状态计数并提取错误明细
func Summarize(table *model.Table, schema *reportschema.ProcurementSchema) (*model.ProcurementSummary, error) {
	if err := parser.RequireColumns(table, schema.StatusColumn); err != nil {
		return nil, err
	}
	statuses, _ := table.Column(schema.StatusColumn)

	summary := &model.ProcurementSummary{
		Type:     schema.Type,
		Label:    schema.Label,
		Rows:     table.Len(),
		Counters: make([]model.Counter, 0, len(schema.Counters)),
	}

	var detailRows []int
	for _, spec := range schema.Counters {
		rows := matchRows(statuses, spec)
		summary.Counters = append(summary.Counters, model.Counter{Name: spec.Name, Value: len(rows)})
		if spec.Name == schema.Detail.Counter {
			detailRows = rows
		}
	}

	if len(detailRows) > 0 {
		summary.Detail = table.Subset(detailRows, schema.Detail.Columns)
	}
	return summary, nil
}

// matchRows 返回满足计数条件的行下标
func matchRows(statuses []string, spec reportschema.CounterSpec) []int {
	kind := spec.Kind()
	rows := make([]int, 0)
	for i, s := range statuses {
		blank := parser.IsBlank(s)
		var hit bool
		switch kind {
		case reportschema.MatchRows:
			hit = true
		case reportschema.MatchNonBlank:
			hit = !blank
		case reportschema.MatchStatuses:
			hit = contains(spec.Statuses, s)
		case reportschema.MatchExcept:
			hit = !blank && !contains(spec.Except, s)
		}
		if hit {
			rows = append(rows, i)
		}
	}
	return rows
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
