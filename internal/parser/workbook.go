package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"opsdash/internal/model"
)

// OpenFile 打开工作簿文件
func OpenFile(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	return f, nil
}

// OpenReader 从流中打开工作簿
func OpenReader(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	return f, nil
}

// ResolveSheet 查找工作表：优先精确匹配，其次忽略大小写与多余空白
func ResolveSheet(wb *excelize.File, sheet string) (string, bool) {
	if wb == nil {
		return "", false
	}
	list := wb.GetSheetList()
	for _, name := range list {
		if name == sheet {
			return name, true
		}
	}
	key := headerKey(sheet)
	for _, name := range list {
		if headerKey(name) == key {
			return name, true
		}
	}
	return "", false
}

// ReadSheet 读取工作表为表格
// headerRow 为表头所在行（从 1 开始），其上方的行被丢弃；单元格读取原始值，日期为 Excel 序列号
func ReadSheet(wb *excelize.File, sheet string, headerRow int) (*model.Table, error) {
	if headerRow < 1 {
		return nil, fmt.Errorf("header row must be >= 1, got %d", headerRow)
	}
	name, ok := ResolveSheet(wb, sheet)
	if !ok {
		return nil, fmt.Errorf("worksheet %q: %w", sheet, ErrSheetNotFound)
	}

	rows, err := wb.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	if len(rows) < headerRow {
		return nil, fmt.Errorf("worksheet %q: %w", name, ErrEmptySheet)
	}

	header := rows[headerRow-1]
	data := rows[headerRow:]

	width := len(header)
	for _, r := range data {
		if len(r) > width {
			width = len(r)
		}
	}

	columns := make([]string, width)
	for i := range columns {
		if i < len(header) {
			columns[i] = NormalizeColumnName(header[i])
		}
		if columns[i] == "" {
			columns[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	table := &model.Table{
		Sheet:   name,
		Columns: DisambiguateColumns(columns),
		Rows:    make([][]string, 0, len(data)),
	}
	for i, r := range data {
		if isBlankRow(r) {
			continue
		}
		row := make([]string, width)
		for j, v := range r {
			row[j] = strings.TrimSpace(v)
		}
		table.Rows = append(table.Rows, row)
		table.SourceRows = append(table.SourceRows, headerRow+i+1)
	}

	return table, nil
}
