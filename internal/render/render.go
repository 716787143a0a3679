// Package render 以终端表格输出汇总结果
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"opsdash/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table 渲染通用表格
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// Title 渲染标题行
func Title(s string) string {
	return titleStyle.Render(s)
}

// ProcessCounts 渲染 Process 计数
func ProcessCounts(w io.Writer, counts []model.ProcessCount) error {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Process, strconv.Itoa(c.Count)}
	}
	_, err := fmt.Fprintln(w, Table([]string{"Process", "Count"}, rows))
	return err
}

// DateCounts 渲染按日计数
func DateCounts(w io.Writer, counts []model.DateCount) error {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Date.Format(model.DateLayout), strconv.Itoa(c.Count)}
	}
	_, err := fmt.Fprintln(w, Table([]string{"Date", "Count"}, rows))
	return err
}

// ShiftRecords 渲染班次记录
func ShiftRecords(w io.Writer, records []model.ShiftRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Date.Format(model.DateLayout), strconv.Itoa(r.Shift), r.Process, r.Issue, r.ActionTaken}
	}
	_, err := fmt.Fprintln(w, Table([]string{"Date", "Shift", "Process", "Issue", "Action Taken"}, rows))
	return err
}

// Summary 渲染采购汇总；明细表仅在计数非零时输出
func Summary(w io.Writer, s *model.ProcurementSummary) error {
	if _, err := fmt.Fprintln(w, Title(fmt.Sprintf("%s: %s", s.Label, s.FileName))); err != nil {
		return err
	}
	rows := make([][]string, len(s.Counters))
	for i, c := range s.Counters {
		rows[i] = []string{c.Name, strconv.Itoa(c.Value)}
	}
	if _, err := fmt.Fprintln(w, Table([]string{"Counter", "Value"}, rows)); err != nil {
		return err
	}
	if s.Detail.Len() > 0 {
		if _, err := fmt.Fprintln(w, Table(s.Detail.Columns, s.Detail.Rows)); err != nil {
			return err
		}
	}
	return nil
}
