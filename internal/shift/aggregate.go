package shift

import (
	"errors"
	"sort"
	"time"

	"opsdash/internal/model"
	"opsdash/internal/parser"
)

// DateRange 闭区间日期范围，两端均包含
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange 构造日期范围，起止均截断到日
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: parser.TruncateDay(start), End: parser.TruncateDay(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, errors.New("end date is before start date")
	}
	return r, nil
}

// Contains 日期是否落在范围内（含两端）
func (r DateRange) Contains(t time.Time) bool {
	d := parser.TruncateDay(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Span 返回记录覆盖的日期范围
func Span(records []model.ShiftRecord) (DateRange, bool) {
	if len(records) == 0 {
		return DateRange{}, false
	}
	r := DateRange{Start: records[0].Date, End: records[0].Date}
	for _, rec := range records[1:] {
		if rec.Date.Before(r.Start) {
			r.Start = rec.Date
		}
		if rec.Date.After(r.End) {
			r.End = rec.Date
		}
	}
	return r, true
}

// InRange 过滤出范围内的记录；r 为空时返回全部
func InRange(records []model.ShiftRecord, r *DateRange) []model.ShiftRecord {
	out := make([]model.ShiftRecord, 0, len(records))
	for _, rec := range records {
		if r == nil || r.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// CountByProcess 按 Process 计数，结果按 Process 排序；无数据时返回空切片
func CountByProcess(records []model.ShiftRecord, r *DateRange) []model.ProcessCount {
	counts := make(map[string]int)
	for _, rec := range InRange(records, r) {
		counts[rec.Process]++
	}

	out := make([]model.ProcessCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, model.ProcessCount{Process: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Process < out[j].Process })
	return out
}

// CountByDate 指定 Process 的按日计数，结果按日期升序
func CountByDate(records []model.ShiftRecord, r *DateRange, process string) []model.DateCount {
	counts := make(map[time.Time]int)
	for _, rec := range InRange(records, r) {
		if rec.Process == process {
			counts[rec.Date]++
		}
	}

	out := make([]model.DateCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, model.DateCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// RecordsFor 指定 Process 与日期的记录
func RecordsFor(records []model.ShiftRecord, process string, date time.Time) []model.ShiftRecord {
	day := parser.TruncateDay(date)
	out := make([]model.ShiftRecord, 0)
	for _, rec := range records {
		if rec.Process == process && rec.Date.Equal(day) {
			out = append(out, rec)
		}
	}
	return out
}

// ResolveRange 根据可选的起止日期构造范围：两端都缺省时返回 span；
// 只给出一端时另一端取 span 对应端，但不越过给出的一端
func ResolveRange(span *DateRange, start, end *time.Time) (*DateRange, error) {
	if start == nil && end == nil {
		return span, nil
	}

	var from, to time.Time
	switch {
	case start != nil && end != nil:
		from, to = *start, *end
	case start != nil:
		from, to = *start, *start
		if span != nil && span.End.After(to) {
			to = span.End
		}
	default:
		from, to = *end, *end
		if span != nil && span.Start.Before(from) {
			from = span.Start
		}
	}

	rng, err := NewDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return &rng, nil
}
