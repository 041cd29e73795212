package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/skillmastery/server/model"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	queueSize     = 1024
	batchSize     = 100
	flushInterval = 2 * time.Second
	maxListLimit  = 500
)

// AuditEntry holds one audit event to be logged.
type AuditEntry struct {
	TraceID    string
	Entity     string
	EntityID   int64
	Action     string
	Payload    interface{}
	Error      string
	IP         string
	DurationMs int
}

// Service logs audit entries asynchronously in batches.
// A nil *Service is valid and discards every entry.
type Service struct {
	db       *gorm.DB
	ch       chan *model.AuditLog
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	logger   *zap.Logger
}

// New creates a new audit Service and starts its background worker.
func New(db *gorm.DB, logger *zap.Logger) *Service {
	svc := &Service{
		db:     db,
		ch:     make(chan *model.AuditLog, queueSize),
		stopCh: make(chan struct{}),
		logger: logger,
	}
	svc.wg.Add(1)
	go svc.worker()
	return svc
}

// Log enqueues an audit entry for async DB write.
func (svc *Service) Log(entry AuditEntry) {
	if svc == nil {
		return
	}
	var payload datatypes.JSON
	if entry.Payload != nil {
		raw, err := json.Marshal(entry.Payload)
		if err != nil {
			svc.logger.Warn("audit payload not serialisable",
				zap.String("entity", entry.Entity), zap.Error(err))
		} else {
			payload = datatypes.JSON(raw)
		}
	}
	record := &model.AuditLog{
		TraceID:    entry.TraceID,
		Entity:     entry.Entity,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		Payload:    payload,
		Error:      entry.Error,
		IP:         entry.IP,
		DurationMs: entry.DurationMs,
	}
	select {
	case svc.ch <- record:
	default:
		svc.logger.Warn("audit channel full, dropping entry",
			zap.String("entity", entry.Entity),
			zap.String("action", entry.Action))
	}
}

// Recent returns up to limit audit rows, newest first.
func (svc *Service) Recent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	logs := []model.AuditLog{}
	if err := svc.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// Purge deletes rows older than retention and returns how many were removed.
func (svc *Service) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	res := svc.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.AuditLog{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge audit logs: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		svc.logger.Info("audit logs purged",
			zap.Int64("rows", res.RowsAffected),
			zap.Time("cutoff", cutoff))
	}
	return res.RowsAffected, nil
}

// Stop flushes remaining entries and shuts down the worker.
// It blocks until the worker goroutine has finished.
func (svc *Service) Stop(_ context.Context) {
	if svc == nil {
		return
	}
	svc.stopOnce.Do(func() { close(svc.stopCh) })
	svc.wg.Wait()
}

func (svc *Service) worker() {
	defer svc.wg.Done()
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]*model.AuditLog, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := svc.db.Create(&batch).Error; err != nil {
			svc.logger.Error("audit batch write failed",
				zap.Int("entries", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-svc.ch:
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-svc.stopCh:
			for {
				select {
				case entry := <-svc.ch:
					batch = append(batch, entry)
				default:
					flush()
					return
				}
			}
		}
	}
}
