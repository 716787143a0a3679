package shift

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"opsdash/internal/model"
	"opsdash/internal/parser"
	"opsdash/internal/reportschema"
)

var shiftHeader = []interface{}{
	"Date/Month", "Pending Action",
	"Process", "Issue", "Action Taken",
	"Process", "Issue", "Action Taken",
	"Process", "Issue", "Action Taken",
	nil,
}

func day(d int) time.Time {
	return time.Date(2024, 12, d, 0, 0, 0, 0, time.UTC)
}

func layout(t *testing.T) *reportschema.ShiftLayout {
	t.Helper()
	r, err := reportschema.Load()
	require.NoError(t, err)
	return &r.Shift
}

// buildShiftWorkbook 第一行为合并的班次标题，第二行为表头
func buildShiftWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()

	const sheet = "End Of Shift Report"
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	_ = f.DeleteSheet("Sheet1")

	all := append([][]interface{}{
		{nil, nil, "Shift 1", nil, nil, "Shift 2", nil, nil, "Shift 3"},
		shiftHeader,
	}, rows...)
	for i, r := range all {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	return f
}

func fullRow(date interface{}, tag string) []interface{} {
	return []interface{}{
		date, "",
		"Billing", tag + " issue 1", "fixed",
		"Invoicing", tag + " issue 2", "retried",
		"Billing", tag + " issue 3", "escalated",
	}
}

func TestAnalyze_ReshapeProducesThreeRecordsPerRow(t *testing.T) {
	wb := buildShiftWorkbook(t, [][]interface{}{
		fullRow(day(1), "a"),
		fullRow(nil, "b"),
		fullRow(day(2), "c"),
		fullRow(nil, "d"),
		fullRow(nil, "e"),
	})

	rep, err := Analyze(wb, layout(t))
	require.NoError(t, err)

	const n = 5
	assert.Len(t, rep.Records, 3*n)
	assert.Zero(t, rep.Dropped)

	wantDates := []time.Time{day(1), day(1), day(2), day(2), day(2)}
	for s := 0; s < 3; s++ {
		for i := 0; i < n; i++ {
			rec := rep.Records[s*n+i]
			assert.Equal(t, s+1, rec.Shift)
			assert.True(t, rec.Date.Equal(wantDates[i]), "shift %d row %d: %v", s+1, i, rec.Date)
		}
	}
	assert.Equal(t, 3, rep.Records[0].SourceRow)
	assert.Equal(t, "a issue 1", rep.Records[0].Issue)
	assert.Equal(t, "Invoicing", rep.Records[n].Process)
}

func TestReshape_DropsRowsWithoutProcess(t *testing.T) {
	wb := buildShiftWorkbook(t, [][]interface{}{
		{nil, "", "Billing", "orphan", "none"}, // 首个日期出现之前
		{day(3), "", "Billing", "x", "y", nil, "", "", "Payroll", "z", "w"},
	})

	table, err := parser.ReadSheet(wb, "End Of Shift Report", 2)
	require.NoError(t, err)

	out, err := Reshape(table, layout(t))
	require.NoError(t, err)

	assert.Equal(t, 4, out.Dropped)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "Billing", out.Records[0].Process)
	assert.Equal(t, "Payroll", out.Records[1].Process)
	assert.Len(t, out.PerShift[1], 0)
}

func TestReshape_SchemaMismatch(t *testing.T) {
	table := &model.Table{
		Sheet:   "End Of Shift Report",
		Columns: []string{"Date/Month", "Pending Action", "Category", "Issue", "Action Taken"},
	}

	_, err := Reshape(table, layout(t))
	var se *parser.SchemaError
	require.True(t, errors.As(err, &se), "got %v", err)
}

func TestReshape_BadDateIsFatal(t *testing.T) {
	wb := buildShiftWorkbook(t, [][]interface{}{
		{"sometime", "", "Billing", "x", "y", "Billing", "x", "y", "Billing", "x", "y"},
	})

	_, err := Analyze(wb, layout(t))
	var de *DateError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, 3, de.Row)
}

func TestAnalyze_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	_, err := Analyze(f, layout(t))
	assert.True(t, errors.Is(err, parser.ErrSheetNotFound), "got %v", err)
}

func TestFilterNoise(t *testing.T) {
	records := []model.ShiftRecord{
		{Issue: "Please see PO# 12345"},
		{Issue: "Printer jam resolved"},
		{Issue: "raised INC #889"},
		{Issue: "PO #1 pending"},
		{Issue: "INC#5"},
		{Issue: "po# lowercase is not a ticket"},
		{Issue: ""},
	}

	res := FilterNoise(records, nil)

	assert.Equal(t, len(records), len(res.Good)+len(res.Bad))
	bad := make([]string, 0, len(res.Bad))
	for _, r := range res.Bad {
		bad = append(bad, r.Issue)
	}
	want := []string{"Please see PO# 12345", "raised INC #889", "PO #1 pending", "INC#5"}
	if diff := cmp.Diff(want, bad); diff != "" {
		t.Fatalf("bad partition mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Printer jam resolved", res.Good[0].Issue)
}

func TestCountByProcess_FullSpanEqualsUnfiltered(t *testing.T) {
	records := []model.ShiftRecord{
		{Date: day(1), Process: "Billing"},
		{Date: day(1), Process: "Invoicing"},
		{Date: day(4), Process: "Billing"},
		{Date: day(9), Process: "Archive"},
	}

	span, ok := Span(records)
	require.True(t, ok)

	all := CountByProcess(records, nil)
	spanned := CountByProcess(records, &span)
	assert.Equal(t, all, spanned)
	assert.Equal(t, []model.ProcessCount{
		{Process: "Archive", Count: 1},
		{Process: "Billing", Count: 2},
		{Process: "Invoicing", Count: 1},
	}, all)
}

func TestCountByProcess_RangeIsInclusive(t *testing.T) {
	records := []model.ShiftRecord{
		{Date: day(1), Process: "Billing"},
		{Date: day(2), Process: "Billing"},
		{Date: day(3), Process: "Billing"},
	}

	rng, err := NewDateRange(day(2), day(3))
	require.NoError(t, err)
	assert.Equal(t, []model.ProcessCount{{Process: "Billing", Count: 2}}, CountByProcess(records, &rng))

	outside, err := NewDateRange(day(20), day(25))
	require.NoError(t, err)
	got := CountByProcess(records, &outside)
	require.NotNil(t, got)
	assert.Empty(t, got)

	_, err = NewDateRange(day(3), day(1))
	assert.Error(t, err)
}

func TestDrillDown(t *testing.T) {
	records := []model.ShiftRecord{
		{Date: day(2), Process: "Billing", Issue: "b"},
		{Date: day(1), Process: "Billing", Issue: "a"},
		{Date: day(2), Process: "Billing", Issue: "c"},
		{Date: day(2), Process: "Payroll", Issue: "d"},
	}

	timeline := CountByDate(records, nil, "Billing")
	assert.Equal(t, []model.DateCount{
		{Date: day(1), Count: 1},
		{Date: day(2), Count: 2},
	}, timeline)

	got := RecordsFor(records, "Billing", day(2).Add(13*time.Hour))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Issue)
	assert.Equal(t, "c", got[1].Issue)
}

func TestResolveRange(t *testing.T) {
	span := &DateRange{Start: day(1), End: day(5)}

	got, err := ResolveRange(span, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, span, got)

	cases := []struct {
		name       string
		span       *DateRange
		start, end *time.Time
		want       DateRange
	}{
		{"start inside span", span, ptr(day(3)), nil, DateRange{day(3), day(5)}},
		{"start past span", span, ptr(day(20)), nil, DateRange{day(20), day(20)}},
		{"end inside span", span, nil, ptr(day(2)), DateRange{day(1), day(2)}},
		{"end before span", span, nil, ptr(day(-10)), DateRange{day(-10), day(-10)}},
		{"both ends without span", nil, ptr(day(1)), ptr(day(31)), DateRange{day(1), day(31)}},
		{"start without span", nil, ptr(day(7)), nil, DateRange{day(7), day(7)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveRange(tc.span, tc.start, tc.end)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, *got); diff != "" {
				t.Errorf("range mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err = ResolveRange(span, ptr(day(4)), ptr(day(2)))
	assert.Error(t, err)
}

func TestReport_RangePastDataCountsNothing(t *testing.T) {
	rep := &Report{
		Good: []model.ShiftRecord{{Date: day(1), Process: "Billing"}, {Date: day(2), Process: "Billing"}},
		Span: &DateRange{Start: day(1), End: day(2)},
	}

	rng, err := rep.Range(ptr(day(25)), nil)
	require.NoError(t, err)
	assert.Empty(t, rep.Counts(rng))

	empty := &Report{}
	rng, err = empty.Range(ptr(day(1)), ptr(day(31)))
	require.NoError(t, err)
	counts := empty.Counts(rng)
	require.NotNil(t, counts)
	assert.Empty(t, counts)
}

func ptr(t time.Time) *time.Time { return &t }
