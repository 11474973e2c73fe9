package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"schoolform-data/internal/domain"
	"schoolform-data/internal/repository"
)

// SinkHandler 提交接收端：幂等 upsert 单条学校档案
// Responses are plain {message} bodies, not the Result envelope: this is
// the wire contract the capture service's delivery client and the original
// form clients both speak.
type SinkHandler struct {
	repo   repository.ProfilesRepo
	logger *zap.Logger
}

func NewSinkHandler(repo repository.ProfilesRepo, logger *zap.Logger) *SinkHandler {
	return &SinkHandler{repo: repo, logger: logger}
}

// SaveSchool POST /api/save-school
func (h *SinkHandler) SaveSchool(w http.ResponseWriter, r *http.Request) {
	var profile domain.SchoolProfile
	if err := readBodyJSON(r, 50<<20, &profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid request body"})
		return
	}

	profile.SchoolID = strings.TrimSpace(profile.SchoolID)
	if profile.SchoolID == "" {
		h.logger.Warn("save request missing school id")
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Missing School ID"})
		return
	}

	if err := h.repo.Save(r.Context(), profile); err != nil {
		h.logger.Error("failed to save school profile",
			zap.String("school_id", profile.SchoolID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "Database error",
			"error":   err.Error(),
		})
		return
	}

	h.logger.Info("school profile saved", zap.String("school_id", profile.SchoolID))
	writeJSON(w, http.StatusOK, map[string]any{"message": "School profile saved"})
}

// Healthz GET /healthz（兼作 capture 服务的在线探测端点）
func (h *SinkHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
