package reportschema

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"opsdash/internal/model"
)

//go:embed schemas.yaml
var defaultSchemas []byte

// 计数匹配方式
const (
	MatchRows     = "rows"     // 全部数据行
	MatchNonBlank = "nonblank" // 状态非空
	MatchStatuses = "statuses" // 状态等于列出的任一值
	MatchExcept   = "except"   // 状态非空且不在列出的值中
)

// ShiftLayout 交班报告的宽表结构
type ShiftLayout struct {
	Sheet        string   `yaml:"sheet"`
	HeaderRow    int      `yaml:"header_row"`
	DateColumn   string   `yaml:"date_column"`
	Columns      []string `yaml:"columns"`
	Shifts       int      `yaml:"shifts"`
	ShiftOffset  int      `yaml:"shift_offset"`
	NoisePattern string   `yaml:"noise_pattern"`

	noise *regexp.Regexp
}

// Noise 返回工单噪声匹配正则
func (l *ShiftLayout) Noise() *regexp.Regexp {
	return l.noise
}

// ShiftColumns 返回第 shift 个班次（从 1 开始）的 Process/Issue/Action Taken 列下标
func (l *ShiftLayout) ShiftColumns(shift int) (process, issue, action int) {
	base := l.ShiftOffset + (shift-1)*3
	return base, base + 1, base + 2
}

// CounterSpec 计数声明
type CounterSpec struct {
	Name     string   `yaml:"name"`
	Match    string   `yaml:"match"`
	Statuses []string `yaml:"statuses"`
	Except   []string `yaml:"except"`
}

// Kind 返回规范化后的匹配方式
func (c CounterSpec) Kind() string {
	switch {
	case c.Match != "":
		return c.Match
	case len(c.Statuses) > 0:
		return MatchStatuses
	case len(c.Except) > 0:
		return MatchExcept
	}
	return ""
}

// DetailSpec 错误明细声明
type DetailSpec struct {
	Counter string   `yaml:"counter"`
	Columns []string `yaml:"columns"`
}

// ProcurementSchema 单个采购报表类型的声明
type ProcurementSchema struct {
	Type         model.ReportType `yaml:"type"`
	Label        string           `yaml:"label"`
	Marker       string           `yaml:"marker"`
	Sheet        string           `yaml:"sheet"`
	HeaderRow    int              `yaml:"header_row"`
	StatusColumn string           `yaml:"status_column"`
	Counters     []CounterSpec    `yaml:"counters"`
	Detail       DetailSpec       `yaml:"detail"`
}

// Registry 全部报表声明
type Registry struct {
	Shift       ShiftLayout         `yaml:"shift"`
	Procurement []ProcurementSchema `yaml:"procurement"`
}

// Load 解析内置声明
func Load() (*Registry, error) {
	return Parse(defaultSchemas)
}

// MustLoad 解析内置声明，失败时 panic
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

// Parse 解析并校验 YAML 声明
func Parse(data []byte) (*Registry, error) {
	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report schemas: %w", err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Lookup 按类型查找采购报表声明
func (r *Registry) Lookup(t model.ReportType) (*ProcurementSchema, bool) {
	for i := range r.Procurement {
		if r.Procurement[i].Type == t {
			return &r.Procurement[i], true
		}
	}
	return nil, false
}

func (r *Registry) validate() error {
	s := &r.Shift
	if s.Sheet == "" {
		return errors.New("shift layout: sheet is required")
	}
	if s.HeaderRow < 1 {
		return fmt.Errorf("shift layout: header_row must be >= 1, got %d", s.HeaderRow)
	}
	if s.Shifts < 1 {
		return fmt.Errorf("shift layout: shifts must be >= 1, got %d", s.Shifts)
	}
	if need := s.ShiftOffset + s.Shifts*3; len(s.Columns) < need {
		return fmt.Errorf("shift layout: %d columns declared, %d shifts need %d", len(s.Columns), s.Shifts, need)
	}
	re, err := regexp.Compile(s.NoisePattern)
	if err != nil {
		return fmt.Errorf("shift layout: invalid noise_pattern: %w", err)
	}
	s.noise = re

	seenType := make(map[model.ReportType]bool)
	seenMarker := make(map[string]bool)
	for _, p := range r.Procurement {
		if p.Type == "" || p.Marker == "" || p.Sheet == "" || p.StatusColumn == "" {
			return fmt.Errorf("procurement schema %q: type, marker, sheet and status_column are required", p.Type)
		}
		if seenType[p.Type] {
			return fmt.Errorf("procurement schema %q declared twice", p.Type)
		}
		if seenMarker[p.Marker] {
			return fmt.Errorf("procurement marker %q declared twice", p.Marker)
		}
		seenType[p.Type] = true
		seenMarker[p.Marker] = true

		if p.HeaderRow < 1 {
			return fmt.Errorf("procurement schema %q: header_row must be >= 1", p.Type)
		}
		detailFound := p.Detail.Counter == ""
		for _, c := range p.Counters {
			switch c.Kind() {
			case MatchRows, MatchNonBlank, MatchStatuses, MatchExcept:
			default:
				return fmt.Errorf("procurement schema %q: counter %q has unknown match %q", p.Type, c.Name, c.Match)
			}
			if c.Name == p.Detail.Counter {
				detailFound = true
			}
		}
		if !detailFound {
			return fmt.Errorf("procurement schema %q: detail counter %q not declared", p.Type, p.Detail.Counter)
		}
	}
	return nil
}
