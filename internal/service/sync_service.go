package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"schoolform-data/internal/domain"
	"schoolform-data/internal/repository"
)

var (
	// ErrOffline 设备离线：整个同步被拒绝，任何条目都未被触碰
	ErrOffline = errors.New("device is offline")
	// ErrSyncInProgress 已有一轮同步在进行中
	ErrSyncInProgress = errors.New("sync pass already in progress")
)

// SyncItemResult 单个条目在本轮同步中的最终状态（仅存在于报告中，不落库）
type SyncItemResult struct {
	ItemID   string            `json:"itemId"`
	SchoolID string            `json:"schoolId"`
	Label    string            `json:"label"`
	Status   domain.SyncStatus `json:"status"`
	Error    string            `json:"error,omitempty"`
}

// SyncReport 一轮同步的结果：逐条状态（输入顺序）+ 总计
type SyncReport struct {
	Attempted int              `json:"attempted"`
	Delivered int              `json:"delivered"`
	Failed    int              `json:"failed"`
	Items     []SyncItemResult `json:"items"`
}

// SyncService 手动同步：把 outbox 里的暂存提交逐条投递到 sink
type SyncService struct {
	outbox  repository.OutboxRepo
	deliver Deliverer
	net     Connectivity
	logger  *zap.Logger
	running atomic.Bool
}

func NewSyncService(outbox repository.OutboxRepo, deliver Deliverer, net Connectivity, logger *zap.Logger) *SyncService {
	return &SyncService{
		outbox:  outbox,
		deliver: deliver,
		net:     net,
		logger:  logger,
	}
}

// SyncAll 执行一轮同步
// Items are attempted strictly one at a time, oldest-staged first; a
// delivered item is removed from the durable store before the next attempt
// starts, so a crash mid-pass cannot re-deliver confirmed items. Failed
// items stay queued untouched. Individual failures never abort the pass;
// only being offline (or a pass already running) refuses it wholesale.
func (s *SyncService) SyncAll(ctx context.Context) (*SyncReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	if !s.net.Online(ctx) {
		return nil, ErrOffline
	}

	items, err := s.outbox.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load outbox: %w", err)
	}

	report := &SyncReport{Items: make([]SyncItemResult, 0, len(items))}
	for _, item := range items {
		res := SyncItemResult{
			ItemID:   item.ID,
			SchoolID: item.SchoolID,
			Label:    item.Label,
			Status:   domain.SyncInFlight,
		}
		report.Attempted++

		outcome := s.deliver.Deliver(ctx, item)
		if outcome.Outcome == DeliveryDelivered {
			res.Status = domain.SyncDelivered
			report.Delivered++
			if err := s.outbox.Delete(ctx, item.ID); err != nil {
				// The sink upsert is idempotent, so re-delivering this item on
				// the next pass is safe; just make the operator aware.
				s.logger.Warn("delivered item could not be removed from outbox",
					zap.String("item_id", item.ID),
					zap.Error(err),
				)
			}
		} else {
			res.Status = domain.SyncFailed
			res.Error = outcome.Message
			report.Failed++
		}
		report.Items = append(report.Items, res)
	}

	s.logger.Info("sync pass finished",
		zap.Int("attempted", report.Attempted),
		zap.Int("delivered", report.Delivered),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
