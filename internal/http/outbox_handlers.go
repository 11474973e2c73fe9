package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schoolform-data/internal/domain"
	"schoolform-data/internal/repository"
	"schoolform-data/internal/service"
)

// OutboxHandler 本地待同步队列的查看、暂存、删除与手动同步
type OutboxHandler struct {
	outbox   repository.OutboxRepo
	syncer   *service.SyncService
	savePath string
	logger   *zap.Logger
}

func NewOutboxHandler(outbox repository.OutboxRepo, syncer *service.SyncService, savePath string, logger *zap.Logger) *OutboxHandler {
	return &OutboxHandler{
		outbox:   outbox,
		syncer:   syncer,
		savePath: savePath,
		logger:   logger,
	}
}

// List GET /api/v1/outbox
// Shown newest-staged first; the sync pass itself walks oldest first.
func (h *OutboxHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.outbox.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list outbox", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list outbox"))
		return
	}

	out := make([]map[string]any, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		out = append(out, map[string]any{
			"id":        item.ID,
			"schoolId":  item.SchoolID,
			"label":     item.Label,
			"createdAt": item.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": out, "total": len(out)}))
}

type stageRequest struct {
	SchoolID    string          `json:"schoolId"`
	Label       string          `json:"label"`
	Destination string          `json:"destination"`
	Payload     json.RawMessage `json:"payload"`
}

// Stage POST /api/v1/outbox
func (h *OutboxHandler) Stage(w http.ResponseWriter, r *http.Request) {
	var req stageRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if len(req.Payload) == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("payload is required"))
		return
	}

	schoolID := strings.TrimSpace(req.SchoolID)
	if schoolID == "" {
		// fall back to the payload's own identifier
		var p struct {
			SchoolID string `json:"schoolId"`
		}
		_ = json.Unmarshal(req.Payload, &p)
		schoolID = strings.TrimSpace(p.SchoolID)
	}

	label := req.Label
	if label == "" {
		label = "Untitled Form"
	}
	dest := req.Destination
	if dest == "" {
		dest = h.savePath
	}

	item := domain.OutboxItem{
		ID:          uuid.NewString(),
		SchoolID:    schoolID,
		Label:       label,
		Destination: dest,
		Payload:     req.Payload,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.outbox.Append(r.Context(), item); err != nil {
		h.logger.Error("failed to stage outbox item", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to stage item"))
		return
	}

	writeJSON(w, http.StatusCreated, Ok(map[string]any{"itemId": item.ID}))
}

// Delete DELETE /api/v1/outbox/{id}
func (h *OutboxHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.outbox.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete outbox item", zap.String("item_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to delete item"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": id}))
}

// SyncAll POST /api/v1/outbox/sync
func (h *OutboxHandler) SyncAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.syncer.SyncAll(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOffline):
			writeJSON(w, http.StatusConflict, Fail("You are still offline. Connect to the internet to sync."))
		case errors.Is(err, service.ErrSyncInProgress):
			writeJSON(w, http.StatusConflict, Fail("A sync pass is already running."))
		default:
			h.logger.Error("sync pass failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("sync failed"))
		}
		return
	}
	writeJSON(w, http.StatusOK, Ok(report))
}
