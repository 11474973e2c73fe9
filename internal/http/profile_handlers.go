package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schoolform-data/internal/domain"
	"schoolform-data/internal/repository"
	"schoolform-data/internal/service"
)

// ProfileHandler 档案录入：自动填充查询 + 直接提交（离线时回落到 outbox）
type ProfileHandler struct {
	autofill *service.AutofillService
	deliver  service.Deliverer
	outbox   repository.OutboxRepo
	savePath string
	logger   *zap.Logger
}

func NewProfileHandler(autofill *service.AutofillService, deliver service.Deliverer, outbox repository.OutboxRepo, savePath string, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		autofill: autofill,
		deliver:  deliver,
		outbox:   outbox,
		savePath: savePath,
		logger:   logger,
	}
}

// Autofill GET /api/v1/profiles/autofill?school_id=100001
func (h *ProfileHandler) Autofill(w http.ResponseWriter, r *http.Request) {
	schoolID := strings.TrimSpace(r.URL.Query().Get("school_id"))
	if schoolID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("school_id is required"))
		return
	}

	draft, err := h.autofill.Lookup(r.Context(), schoolID)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			writeJSON(w, http.StatusNotFound, Fail(fmt.Sprintf("School ID %q not found", schoolID)))
			return
		}
		h.logger.Error("autofill lookup failed", zap.String("school_id", schoolID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("autofill lookup failed"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(draft))
}

// Submit POST /api/v1/profiles
// Delivers the profile to the sink right away; a transport failure stages it
// into the outbox instead, a sink rejection is surfaced for manual retry.
func (h *ProfileHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var profile domain.SchoolProfile
	if err := readBodyJSON(r, 1<<20, &profile); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	profile.SchoolID = strings.TrimSpace(profile.SchoolID)
	if profile.SchoolID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("Missing School ID"))
		return
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail("failed to encode profile"))
		return
	}

	item := domain.OutboxItem{
		ID:          uuid.NewString(),
		SchoolID:    profile.SchoolID,
		Label:       "School Profile " + profile.SchoolID,
		Destination: h.savePath,
		Payload:     payload,
		CreatedAt:   time.Now().UTC(),
	}

	res := h.deliver.Deliver(r.Context(), item)
	switch res.Outcome {
	case service.DeliveryDelivered:
		writeJSON(w, http.StatusOK, Ok(map[string]any{
			"status":  "saved",
			"message": res.Message,
		}))
	case service.DeliveryRejected:
		writeJSON(w, http.StatusBadGateway, Fail(res.Message))
	default: // network error: stage for a later manual sync
		if err := h.outbox.Append(r.Context(), item); err != nil {
			h.logger.Error("failed to stage submission into outbox",
				zap.String("school_id", profile.SchoolID),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, Fail("submission failed and could not be queued"))
			return
		}
		h.logger.Info("submission staged into outbox",
			zap.String("item_id", item.ID),
			zap.String("school_id", profile.SchoolID),
		)
		writeJSON(w, http.StatusAccepted, Ok(map[string]any{
			"status": "queued",
			"itemId": item.ID,
		}))
	}
}
