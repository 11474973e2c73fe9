package httpapi

import (
	"net/http"

	"schoolform-data/internal/location"
)

// LocationHandler 级联下拉的候选列表（UI 只渲染，不持有共享状态）
type LocationHandler struct {
	hierarchy location.Hierarchy
}

func NewLocationHandler(hierarchy location.Hierarchy) *LocationHandler {
	return &LocationHandler{hierarchy: hierarchy}
}

// Regions GET /api/v1/locations/regions
func (h *LocationHandler) Regions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(map[string]any{"regions": h.hierarchy.Regions()}))
}

// Options GET /api/v1/locations/options?region=&province=&municipality=
// Each deeper list is only populated once the levels above it are given.
func (h *LocationHandler) Options(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	province := r.URL.Query().Get("province")
	municipality := r.URL.Query().Get("municipality")

	out := map[string]any{
		"provinces":      []string{},
		"municipalities": []string{},
		"barangays":      []string{},
	}
	if region != "" {
		out["provinces"] = h.hierarchy.Provinces(region)
	}
	if region != "" && province != "" {
		out["municipalities"] = h.hierarchy.Municipalities(region, province)
	}
	if region != "" && province != "" && municipality != "" {
		out["barangays"] = h.hierarchy.Barangays(region, province, municipality)
	}
	writeJSON(w, http.StatusOK, Ok(out))
}
