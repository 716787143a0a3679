package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"opsdash/internal/shift"
)

// ErrReportNotFound 报告不存在或已过期
var ErrReportNotFound = errors.New("report not found or expired")

type entry struct {
	report    *shift.Report
	expiresAt time.Time
}

// Store 已分析交班报告的内存缓存，按 ID 访问，过期自动清理
type Store struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time

	cron   *cron.Cron
	logger *zap.Logger
}

// NewStore 创建缓存
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		items:  make(map[string]entry),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Put 保存报告并返回 ID
func (s *Store) Put(report *shift.Report) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.items[id] = entry{report: report, expiresAt: s.now().Add(s.ttl)}
	return id
}

// Get 读取报告；访问会刷新过期时间
func (s *Store) Get(id string) (*shift.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.items, id)
		return nil, ErrReportNotFound
	}
	e.expiresAt = now.Add(s.ttl)
	s.items[id] = e
	return e.report, nil
}

// Delete 删除报告
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Count 当前缓存的报告数
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Purge 清理过期报告，返回清理数量
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
			n++
		}
	}
	return n
}

// StartPurge 按 cron 表达式定期清理（支持 "@every 1m" 等描述符）
func (s *Store) StartPurge(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if n := s.Purge(); n > 0 {
			s.logger.Debug("purged expired shift reports", zap.Int("count", n))
		}
	}); err != nil {
		return err
	}
	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()
	c.Start()
	return nil
}

// Stop 停止定期清理并等待正在执行的任务结束
func (s *Store) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
