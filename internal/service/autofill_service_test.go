package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"schoolform-data/internal/location"
	"schoolform-data/internal/refdata"
	"schoolform-data/internal/store"
)

func autofillFixtures(t *testing.T) (*refdata.Dataset, location.Hierarchy) {
	t.Helper()
	d, err := refdata.New(
		[]string{"SchoolID", "School.Name", "Region", "Province", "Municipality", "Barangay", "Division", "District", "Legislative.District", "Mother.School", "Latitude", "Longitude"},
		[]refdata.Record{{
			"SchoolID":             "100001.1",
			"School.Name":          "Laoag Central",
			"Region":               "REGION I",
			"Province":             "ilocos norte",
			"Municipality":         "Laoag City",
			"Barangay":             "barangay a",
			"Division":             "Laoag Division",
			"District":             "Laoag East",
			"Legislative.District": "1st District",
			"Mother.School":        "100000",
			"Latitude":             "18.19",
			"Longitude":            "120.59",
		}},
	)
	if err != nil {
		t.Fatal(err)
	}

	h := location.Hierarchy{
		"Region I": {
			"Ilocos Norte": {
				"Laoag City": {"Barangay A", "Barangay B"},
			},
		},
	}
	return d, h
}

// fakeKV is an in-memory store.KV for cache behavior tests.
type fakeKV struct {
	values map[string]string
	getErr error
	sets   int
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[key] = value
	f.sets++
	return nil
}

func TestAutofillLookup(t *testing.T) {
	data, h := autofillFixtures(t)
	s := NewAutofillService(data, h, nil, 0, zap.NewNop())

	draft, err := s.Lookup(context.Background(), "100001")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	p := draft.Profile
	if p.SchoolID != "100001" || p.SchoolName != "Laoag Central" {
		t.Errorf("profile identity = %q/%q", p.SchoolID, p.SchoolName)
	}
	// messy dataset strings resolved to canonical hierarchy spellings
	if p.Region != "Region I" || p.Province != "Ilocos Norte" || p.Municipality != "Laoag City" || p.Barangay != "Barangay A" {
		t.Errorf("resolved location = %q/%q/%q/%q", p.Region, p.Province, p.Municipality, p.Barangay)
	}
	if p.Division != "Laoag Division" || p.LegDistrict != "1st District" {
		t.Errorf("division/legdistrict = %q/%q", p.Division, p.LegDistrict)
	}
	if p.MotherSchoolID != "100000" || p.Latitude != "18.19" || p.Longitude != "120.59" {
		t.Errorf("aux fields = %q/%q/%q", p.MotherSchoolID, p.Latitude, p.Longitude)
	}

	if !reflect.DeepEqual(draft.ProvinceOptions, []string{"Ilocos Norte"}) {
		t.Errorf("province options = %v", draft.ProvinceOptions)
	}
	if !reflect.DeepEqual(draft.BarangayOptions, []string{"Barangay A", "Barangay B"}) {
		t.Errorf("barangay options = %v", draft.BarangayOptions)
	}
}

func TestAutofillLookupNotFound(t *testing.T) {
	data, h := autofillFixtures(t)
	s := NewAutofillService(data, h, nil, 0, zap.NewNop())

	for _, id := range []string{"999999", "", "   "} {
		if _, err := s.Lookup(context.Background(), id); !errors.Is(err, ErrSchoolNotFound) {
			t.Errorf("Lookup(%q) error = %v, want ErrSchoolNotFound", id, err)
		}
	}
}

func TestAutofillLookupCaching(t *testing.T) {
	data, h := autofillFixtures(t)
	kv := &fakeKV{}
	s := NewAutofillService(data, h, kv, time.Minute, zap.NewNop())

	first, err := s.Lookup(context.Background(), "100001")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if kv.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", kv.sets)
	}

	second, err := s.Lookup(context.Background(), "100001")
	if err != nil {
		t.Fatalf("cached Lookup() error = %v", err)
	}
	if kv.sets != 1 {
		t.Errorf("cache sets after hit = %d, want still 1", kv.sets)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached draft differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestAutofillLookupCacheErrorFallsThrough(t *testing.T) {
	data, h := autofillFixtures(t)
	kv := &fakeKV{getErr: errors.New("redis down")}
	s := NewAutofillService(data, h, kv, time.Minute, zap.NewNop())

	draft, err := s.Lookup(context.Background(), "100001")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if draft.Profile.SchoolName != "Laoag Central" {
		t.Errorf("draft = %+v, want dataset lookup despite cache error", draft.Profile)
	}
}
