package parser

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName 规范化列名：去除首尾空白，换行/制表符与连续空格压缩为单个空格
func NormalizeColumnName(name string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(name), " ")
}

// headerKey 列名比较键（规范化后忽略大小写）
func headerKey(name string) string {
	return strings.ToLower(NormalizeColumnName(name))
}

// IsBlank 空串或仅含空白
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isBlankRow 整行均为空
func isBlankRow(row []string) bool {
	for _, v := range row {
		if !IsBlank(v) {
			return false
		}
	}
	return true
}
