package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"schoolform-data/internal/domain"
	"schoolform-data/internal/location"
	"schoolform-data/internal/refdata"
	"schoolform-data/internal/store"
)

// ErrSchoolNotFound 参考数据集中没有该学校编号
var ErrSchoolNotFound = errors.New("school id not found in reference dataset")

// AutofillService 按学校编号预填档案草稿
// The reference dataset and the canonical hierarchy are loaded once at
// startup and passed in explicitly; the service never mutates them.
type AutofillService struct {
	data      *refdata.Dataset
	hierarchy location.Hierarchy
	cache     store.KV // optional, nil disables caching
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewAutofillService(data *refdata.Dataset, hierarchy location.Hierarchy, cache store.KV, cacheTTL time.Duration, logger *zap.Logger) *AutofillService {
	return &AutofillService{
		data:      data,
		hierarchy: hierarchy,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Lookup 查找参考记录并生成层级一致的预填草稿
// Location strings from the record are resolved against the canonical
// hierarchy so the draft's four selections line up with the option lists.
func (s *AutofillService) Lookup(ctx context.Context, schoolID string) (*domain.Draft, error) {
	id := strings.TrimSpace(schoolID)
	if id == "" {
		return nil, ErrSchoolNotFound
	}

	cacheKey := "schoolform:autofill:" + id
	if s.cache != nil {
		if v, err := s.cache.Get(ctx, cacheKey); err == nil {
			var draft domain.Draft
			if err := json.Unmarshal([]byte(v), &draft); err == nil {
				return &draft, nil
			}
		}
	}

	rec, ok := s.data.Find(id)
	if !ok {
		return nil, ErrSchoolNotFound
	}

	resolved := location.Resolve(s.hierarchy,
		s.data.FieldValue(rec, "region"),
		s.data.FieldValue(rec, "province"),
		s.data.FieldValue(rec, "municipality"),
		s.data.FieldValue(rec, "barangay"),
	)

	draft := &domain.Draft{
		Profile: domain.SchoolProfile{
			SchoolID:     id,
			SchoolName:   s.data.FieldValue(rec, "schoolname"),
			Region:       resolved.Region,
			Province:     resolved.Province,
			Municipality: resolved.Municipality,
			Barangay:     resolved.Barangay,
			Division:     s.data.FieldValue(rec, "division"),
			District:     s.data.FieldValue(rec, "district"),
			// header naming varies between releases; the order is the contract
			LegDistrict:    s.data.FirstFieldValue(rec, "legdistrict", "legislative"),
			MotherSchoolID: s.data.FieldValue(rec, "motherschool"),
			Latitude:       s.data.FieldValue(rec, "latitude"),
			Longitude:      s.data.FieldValue(rec, "longitude"),
		},
		ProvinceOptions:     resolved.ProvinceOptions,
		MunicipalityOptions: resolved.MunicipalityOptions,
		BarangayOptions:     resolved.BarangayOptions,
	}

	if s.cache != nil {
		if data, err := json.Marshal(draft); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), s.cacheTTL); err != nil {
				s.logger.Debug("autofill cache write failed", zap.Error(err))
			}
		}
	}

	return draft, nil
}
