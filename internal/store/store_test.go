package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsdash/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordUpload_FillsIDAndTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := &model.UploadLogEntry{Pipeline: model.PipelineShift, FileName: "eos.xlsx", Rows: 12, Status: "ok"}
	require.NoError(t, s.RecordUpload(ctx, e))
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())

	got, err := s.RecentUploads(ctx, UploadQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
	assert.Equal(t, model.PipelineShift, got[0].Pipeline)
	assert.Equal(t, 12, got[0].Rows)
}

func TestRecentUploads_OrderFilterLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)

	entries := []model.UploadLogEntry{
		{Pipeline: model.PipelineProcurement, FileName: "PR to PO.xlsx", ReportType: "pr_to_po", Status: "ok", CreatedAt: base},
		{Pipeline: model.PipelineShift, FileName: "eos.xlsx", Status: "ok", CreatedAt: base.Add(time.Minute)},
		{Pipeline: model.PipelineProcurement, FileName: "notes.xlsx", Status: "skipped", CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range entries {
		require.NoError(t, s.RecordUpload(ctx, &entries[i]))
	}

	all, err := s.RecentUploads(ctx, UploadQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "notes.xlsx", all[0].FileName)
	assert.Equal(t, "PR to PO.xlsx", all[2].FileName)

	proc, err := s.RecentUploads(ctx, UploadQuery{Pipeline: model.PipelineProcurement, Limit: 1})
	require.NoError(t, err)
	require.Len(t, proc, 1)
	assert.Equal(t, "skipped", proc[0].Status)
}

func TestNew_FileDSNCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "uploads.db")
	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.FileExists(t, path)
}
