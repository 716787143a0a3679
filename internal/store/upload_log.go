package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"opsdash/internal/model"
)

const uploadLogsTable = "upload_logs"

var uploadLogColumns = []string{
	"id", "request_id", "pipeline", "filename", "report_type", "row_count", "status", "message", "created_at",
}

// RecordUpload 写入一条上传审计记录；ID 与时间为空时自动生成
func (s *Store) RecordUpload(ctx context.Context, e *model.UploadLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.sb.Insert(uploadLogsTable).
		Columns(uploadLogColumns...).
		Values(e.ID, e.RequestID, string(e.Pipeline), e.FileName, e.ReportType, e.Rows, e.Status, e.Message, e.CreatedAt).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}
	return nil
}

// UploadQuery 上传记录查询条件
type UploadQuery struct {
	Pipeline model.Pipeline
	Limit    uint64
}

// RecentUploads 按时间倒序返回上传记录
func (s *Store) RecentUploads(ctx context.Context, q UploadQuery) ([]model.UploadLogEntry, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	b := s.sb.Select(uploadLogColumns...).
		From(uploadLogsTable).
		OrderBy("created_at DESC", "id").
		Limit(q.Limit)
	if q.Pipeline != "" {
		b = b.Where(sq.Eq{"pipeline": string(q.Pipeline)})
	}

	rows, err := b.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query uploads: %w", err)
	}
	defer rows.Close()

	out := make([]model.UploadLogEntry, 0)
	for rows.Next() {
		var e model.UploadLogEntry
		var pipeline string
		if err := rows.Scan(&e.ID, &e.RequestID, &pipeline, &e.FileName, &e.ReportType, &e.Rows, &e.Status, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		e.Pipeline = model.Pipeline(pipeline)
		out = append(out, e)
	}
	return out, rows.Err()
}
