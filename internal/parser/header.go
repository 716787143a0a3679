package parser

import (
	"fmt"
	"strconv"

	"opsdash/internal/model"
)

// DisambiguateColumns 为重复列名追加序号：第 n 次出现的同名列改为 "名称_n"
// 例如两个 "PSS Status" 列变为 "PSS Status" 与 "PSS Status_2"
func DisambiguateColumns(columns []string) []string {
	out := make([]string, len(columns))
	seen := make(map[string]int, len(columns))
	taken := make(map[string]bool, len(columns))
	for _, c := range columns {
		taken[c] = true
	}

	for i, c := range columns {
		seen[c]++
		if seen[c] == 1 {
			out[i] = c
			continue
		}
		n := seen[c]
		name := c + "_" + strconv.Itoa(n)
		for taken[name] {
			n++
			name = c + "_" + strconv.Itoa(n)
		}
		taken[name] = true
		out[i] = name
	}
	return out
}

// MatchHeader 按位置校验表头；比较时忽略大小写与多余空白，want 之后的列不做要求
func MatchHeader(sheet string, got, want []string) error {
	if len(got) < len(want) {
		return &SchemaError{
			Sheet: sheet,
			Want:  fmt.Sprintf("at least %d columns", len(want)),
			Got:   strconv.Itoa(len(got)),
		}
	}
	for i, w := range want {
		if headerKey(got[i]) != headerKey(w) {
			return &SchemaError{
				Sheet:    sheet,
				Position: i + 1,
				Want:     w,
				Got:      got[i],
			}
		}
	}
	return nil
}

// RequireColumns 校验表格包含全部列
func RequireColumns(t *model.Table, columns ...string) error {
	for _, c := range columns {
		if t.Index(c) < 0 {
			return &MissingColumnError{Sheet: t.Sheet, Column: c}
		}
	}
	return nil
}
