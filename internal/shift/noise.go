package shift

import (
	"regexp"

	"opsdash/internal/model"
)

// DefaultNoisePattern 工单/采购单引用标记，区分大小写
var DefaultNoisePattern = regexp.MustCompile(`PO#|PO #|INC #|INC#`)

// FilterResult 噪声过滤结果；每条记录恰好属于其中之一
type FilterResult struct {
	Good []model.ShiftRecord `json:"good"`
	Bad  []model.ShiftRecord `json:"bad"`
}

// FilterNoise 按 Issue 是否引用工单号划分记录，pattern 为空时使用默认规则
func FilterNoise(records []model.ShiftRecord, pattern *regexp.Regexp) FilterResult {
	if pattern == nil {
		pattern = DefaultNoisePattern
	}
	res := FilterResult{
		Good: make([]model.ShiftRecord, 0, len(records)),
		Bad:  make([]model.ShiftRecord, 0),
	}
	for _, r := range records {
		if pattern.MatchString(r.Issue) {
			res.Bad = append(res.Bad, r)
		} else {
			res.Good = append(res.Good, r)
		}
	}
	return res
}
