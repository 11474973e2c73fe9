package location

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeLocations(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locations.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadHierarchy(t *testing.T) {
	path := writeLocations(t, `{
		"Region I": {
			"Ilocos Norte": {
				"Laoag City": ["Barangay B", "Barangay A", "Barangay B"]
			}
		}
	}`)

	h, err := LoadHierarchy(path)
	if err != nil {
		t.Fatalf("LoadHierarchy() error = %v", err)
	}

	// duplicates dropped, list sorted at load time
	got := h.Barangays("Region I", "Ilocos Norte", "Laoag City")
	want := []string{"Barangay A", "Barangay B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Barangays() = %v, want %v", got, want)
	}
}

func TestLoadHierarchyErrors(t *testing.T) {
	if _, err := LoadHierarchy(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadHierarchy() with missing file: expected error")
	}
	if _, err := LoadHierarchy(writeLocations(t, `{"Region I": [`)); err == nil {
		t.Error("LoadHierarchy() with invalid JSON: expected error")
	}
}

func TestHierarchyListings(t *testing.T) {
	h := testHierarchy()

	if got, want := h.Regions(), []string{"Region I", "Region II"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Regions() = %v, want %v", got, want)
	}
	if got, want := h.Provinces("Region I"), []string{"Ilocos Norte", "Ilocos Sur"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Provinces() = %v, want %v", got, want)
	}
	if got, want := h.Municipalities("Region I", "Ilocos Norte"), []string{"Batac City", "Laoag City"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Municipalities() = %v, want %v", got, want)
	}
	if got, want := h.Barangays("Region I", "Ilocos Norte", "Laoag City"), []string{"Barangay A", "Barangay B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Barangays() = %v, want %v", got, want)
	}
}

func TestHierarchyListingsMissingKeys(t *testing.T) {
	h := testHierarchy()

	checks := [][]string{
		h.Provinces("Region XIII"),
		h.Municipalities("Region I", "Pangasinan"),
		h.Municipalities("Region XIII", "Ilocos Norte"),
		h.Barangays("Region I", "Ilocos Norte", "Nowhere"),
		h.Barangays("Region XIII", "Ilocos Norte", "Laoag City"),
	}
	for i, got := range checks {
		if len(got) != 0 {
			t.Errorf("check %d: got %v, want empty", i, got)
		}
		if got == nil {
			t.Errorf("check %d: got nil, want empty slice", i)
		}
	}
}

func TestBarangaysReturnsCopy(t *testing.T) {
	h := testHierarchy()
	first := h.Barangays("Region I", "Ilocos Norte", "Laoag City")
	first[0] = "mutated"
	second := h.Barangays("Region I", "Ilocos Norte", "Laoag City")
	if second[0] != "Barangay A" {
		t.Errorf("Barangays() shares backing array with callers: got %v", second)
	}
}
