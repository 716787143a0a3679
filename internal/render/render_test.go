package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsdash/internal/model"
)

func TestProcessCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ProcessCounts(&buf, []model.ProcessCount{{Process: "Billing", Count: 7}}))

	out := buf.String()
	assert.Contains(t, out, "Process")
	assert.Contains(t, out, "Billing")
	assert.Contains(t, out, "7")
}

func TestSummary_DetailOnlyWhenPresent(t *testing.T) {
	s := &model.ProcurementSummary{
		Label:    "Vendor",
		FileName: "Vendor.xlsx",
		Counters: []model.Counter{{Name: "error", Value: 0}},
	}

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, s))
	assert.NotContains(t, buf.String(), "Vendor#")

	s.Counters[0].Value = 1
	s.Detail = &model.Table{Columns: []string{"Vendor#", "Status"}, Rows: [][]string{{"V9", "Blocked"}}}
	buf.Reset()
	require.NoError(t, Summary(&buf, s))
	assert.Contains(t, buf.String(), "Vendor#")
	assert.Contains(t, buf.String(), "Blocked")
}

func TestShiftRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ShiftRecords(&buf, []model.ShiftRecord{{
		Date: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), Shift: 2, Process: "Billing", Issue: "late file",
	}}))
	assert.True(t, strings.Contains(buf.String(), "2024-12-01"))
	assert.Contains(t, buf.String(), "late file")
}
