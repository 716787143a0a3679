package procurement

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"opsdash/internal/model"
	"opsdash/internal/parser"
	"opsdash/internal/reportschema"
)

// Classify 按文件名中的标记识别报表类型；按声明顺序匹配，先命中者优先
func Classify(filename string, registry *reportschema.Registry) (*reportschema.ProcurementSchema, bool) {
	base := filepath.Base(filename)
	for i := range registry.Procurement {
		s := &registry.Procurement[i]
		if strings.Contains(base, s.Marker) {
			return s, true
		}
	}
	return nil, false
}

// Opener 打开上传文件，同时返回文件修改时间
type Opener func() (*excelize.File, time.Time, error)

// Input 一个待汇总的上传文件；Open 仅在文件名识别成功后调用
type Input struct {
	Name string
	Open Opener
}

// Result 批量汇总结果，Summaries 与上传顺序一致
type Result struct {
	Summaries []*model.ProcurementSummary `json:"summaries"`
	Skipped   []string                    `json:"skipped"`
}

// Dispatcher 采购报表分发器
type Dispatcher struct {
	registry *reportschema.Registry
	logger   *zap.Logger
}

// NewDispatcher 创建分发器
func NewDispatcher(registry *reportschema.Registry, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{registry: registry, logger: logger}
}

// Summarize 依次处理上传文件；无法识别类型的文件被跳过，读取失败立即返回错误
func (d *Dispatcher) Summarize(ctx context.Context, inputs []Input) (*Result, error) {
	res := &Result{
		Summaries: make([]*model.ProcurementSummary, 0, len(inputs)),
		Skipped:   make([]string, 0),
	}
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		schema, ok := Classify(in.Name, d.registry)
		if !ok {
			d.logger.Info("skipping unrecognized procurement report", zap.String("file", in.Name))
			res.Skipped = append(res.Skipped, in.Name)
			continue
		}

		summary, err := d.summarizeOne(in, schema)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Name, err)
		}
		d.logger.Debug("procurement report summarized",
			zap.String("file", in.Name),
			zap.String("type", string(schema.Type)),
			zap.Int("detailRows", summary.Detail.Len()),
		)
		res.Summaries = append(res.Summaries, summary)
	}
	return res, nil
}

func (d *Dispatcher) summarizeOne(in Input, schema *reportschema.ProcurementSchema) (*model.ProcurementSummary, error) {
	wb, modTime, err := in.Open()
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	table, err := parser.ReadSheet(wb, schema.Sheet, schema.HeaderRow)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(table, schema)
	if err != nil {
		return nil, err
	}
	summary.FileName = in.Name
	summary.ModifiedAt = modTime
	return summary, nil
}
