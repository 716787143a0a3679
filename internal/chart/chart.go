// Package chart 生成前端 ECharts 使用的图表配置，只包含数据，不负责渲染
package chart

import (
	"time"

	"opsdash/internal/model"
)

// TimestampLayout 时间轴类目的格式
const TimestampLayout = "2006-01-02T15:04:05"

// Option ECharts option
type Option struct {
	Tooltip Tooltip  `json:"tooltip"`
	XAxis   Axis     `json:"xAxis"`
	YAxis   Axis     `json:"yAxis"`
	Series  []Series `json:"series"`
}

// Tooltip 提示框
type Tooltip struct {
	Trigger     string       `json:"trigger"`
	AxisPointer *AxisPointer `json:"axisPointer,omitempty"`
}

// AxisPointer 坐标轴指示器
type AxisPointer struct {
	Type string `json:"type"`
}

// Axis 坐标轴
type Axis struct {
	Type      string     `json:"type"`
	Data      []string   `json:"data,omitempty"`
	AxisLabel *AxisLabel `json:"axisLabel,omitempty"`
}

// AxisLabel 坐标轴标签
type AxisLabel struct {
	Rotate int `json:"rotate"`
}

// Series 数据系列
type Series struct {
	Type      string     `json:"type"`
	Data      []int      `json:"data"`
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
}

// ItemStyle 图形样式
type ItemStyle struct {
	Color string `json:"color"`
}

// DefaultColor 默认系列颜色
const DefaultColor = "red"

func base(kind string, categories []string, values []int) Option {
	return Option{
		Tooltip: Tooltip{Trigger: "axis", AxisPointer: &AxisPointer{Type: "shadow"}},
		XAxis:   Axis{Type: "category", Data: categories},
		YAxis:   Axis{Type: "value"},
		Series: []Series{{
			Type:      kind,
			Data:      values,
			ItemStyle: &ItemStyle{Color: DefaultColor},
		}},
	}
}

// Bar 柱状图，类目标签旋转 90 度
func Bar(categories []string, values []int) Option {
	o := base("bar", categories, values)
	o.XAxis.AxisLabel = &AxisLabel{Rotate: 90}
	return o
}

// Line 折线图
func Line(categories []string, values []int) Option {
	return base("line", categories, values)
}

// ProcessBar Process 计数柱状图
func ProcessBar(counts []model.ProcessCount) Option {
	cats := make([]string, len(counts))
	vals := make([]int, len(counts))
	for i, c := range counts {
		cats[i] = c.Process
		vals[i] = c.Count
	}
	return Bar(cats, vals)
}

// DateLine 按日计数折线图
func DateLine(counts []model.DateCount) Option {
	cats := make([]string, len(counts))
	vals := make([]int, len(counts))
	for i, c := range counts {
		cats[i] = c.Date.Format(TimestampLayout)
		vals[i] = c.Count
	}
	return Line(cats, vals)
}

// CounterBar 采购汇总计数柱状图
func CounterBar(counters []model.Counter) Option {
	cats := make([]string, len(counters))
	vals := make([]int, len(counters))
	for i, c := range counters {
		cats[i] = c.Name
		vals[i] = c.Value
	}
	return Bar(cats, vals)
}

// ParseCategory 解析折线图类目（点击事件回传的标签）为日期
func ParseCategory(label string) (time.Time, error) {
	return time.Parse(TimestampLayout, label)
}
