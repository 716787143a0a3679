package model

// Table 工作表的通用表格视图（表头已提升、重复列名已消歧）
type Table struct {
	Sheet   string     `json:"sheet,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`

	// SourceRows 每个数据行在工作表中的行号（从 1 开始），可为空
	SourceRows []int `json:"-"`
}

// Index 返回列名对应的下标，不存在时返回 -1
func (t *Table) Index(name string) int {
	if t == nil {
		return -1
	}
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Value 读取第 row 行 name 列的值；列不存在或越界时返回空串
func (t *Table) Value(row int, name string) string {
	idx := t.Index(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Column 返回整列的值
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		if idx < len(r) {
			out[i] = r[idx]
		}
	}
	return out, true
}

// SourceRow 返回第 i 个数据行在工作表中的行号，未知时返回 0
func (t *Table) SourceRow(i int) int {
	if i < 0 || i >= len(t.SourceRows) {
		return 0
	}
	return t.SourceRows[i]
}

// Subset 按行下标与列名投影出子表；columns 为空时保留全部列，未知列被忽略
func (t *Table) Subset(rows []int, columns []string) *Table {
	cols := t.Columns
	idx := make([]int, 0, len(t.Columns))
	if len(columns) == 0 {
		for i := range t.Columns {
			idx = append(idx, i)
		}
	} else {
		cols = make([]string, 0, len(columns))
		for _, name := range columns {
			if i := t.Index(name); i >= 0 {
				cols = append(cols, name)
				idx = append(idx, i)
			}
		}
	}

	out := &Table{
		Sheet:   t.Sheet,
		Columns: append([]string(nil), cols...),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, ri := range rows {
		if ri < 0 || ri >= len(t.Rows) {
			continue
		}
		src := t.Rows[ri]
		dst := make([]string, len(idx))
		for j, ci := range idx {
			if ci < len(src) {
				dst[j] = src[ci]
			}
		}
		out.Rows = append(out.Rows, dst)
		if ri < len(t.SourceRows) {
			out.SourceRows = append(out.SourceRows, t.SourceRows[ri])
		}
	}
	return out
}

// Len 数据行数
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
