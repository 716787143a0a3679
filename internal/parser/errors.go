package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrSheetNotFound 工作簿中不存在指定工作表
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrEmptySheet 工作表没有表头行
	ErrEmptySheet = errors.New("sheet has no header row")
)

// SchemaError 表头与声明的列结构不一致
type SchemaError struct {
	Sheet    string
	Position int // 从 1 开始的列号，0 表示列数不足
	Want     string
	Got      string
}

func (e *SchemaError) Error() string {
	if e.Position == 0 {
		return fmt.Sprintf("sheet %q: %s, got %s", e.Sheet, e.Want, e.Got)
	}
	return fmt.Sprintf("sheet %q: column %d: want %q, got %q", e.Sheet, e.Position, e.Want, e.Got)
}

// MissingColumnError 缺少必需的列
type MissingColumnError struct {
	Sheet  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("sheet %q: column %q not found", e.Sheet, e.Column)
}
