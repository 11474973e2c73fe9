package refdata

import "testing"

func testDataset(t *testing.T, headers []string, rows []Record) *Dataset {
	t.Helper()
	d, err := New(headers, rows)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFind(t *testing.T) {
	d := testDataset(t,
		[]string{"SchoolID", "School.Name"},
		[]Record{
			{"SchoolID": "100001.1", "School.Name": "Laoag Central"},
			{"SchoolID": "100001.2", "School.Name": "Laoag Annex"},
			{"SchoolID": " 100002 ", "School.Name": "Batac North"},
		},
	)

	tests := []struct {
		name     string
		target   string
		wantName string
		wantOK   bool
	}{
		{"suffix variant truncated at dot", "100001", "Laoag Central", true},
		{"first matching row wins", "100001", "Laoag Central", true},
		{"candidate id trimmed", "100002", "Batac North", true},
		{"target trimmed", "  100002  ", "Batac North", true},
		{"unknown id", "999999", "", false},
		{"suffix form is not a lookup key", "100001.1", "", false},
		{"empty target", "", "", false},
		{"blank target", "   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := d.Find(tt.target)
			if ok != tt.wantOK {
				t.Fatalf("Find(%q) ok = %v, want %v", tt.target, ok, tt.wantOK)
			}
			if ok && rec["School.Name"] != tt.wantName {
				t.Errorf("Find(%q) name = %q, want %q", tt.target, rec["School.Name"], tt.wantName)
			}
		})
	}
}

func TestFieldValue(t *testing.T) {
	d := testDataset(t,
		[]string{"SchoolID", "School.Name", "Region", "Legislative.District"},
		nil,
	)
	rec := Record{
		"SchoolID":             "100001",
		"School.Name":          "  Laoag Central  ",
		"Region":               "Region I",
		"Legislative.District": "1st District",
	}

	tests := []struct {
		target string
		want   string
	}{
		{"schoolname", "Laoag Central"}, // value trimmed
		{"school name", "Laoag Central"},
		{"region", "Region I"},
		{"legislative", "1st District"},
		{"legdistrict", ""}, // containment, not subsequence
		{"nosuchfield", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := d.FieldValue(rec, tt.target); got != tt.want {
			t.Errorf("FieldValue(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestFieldValueFirstHeaderWins(t *testing.T) {
	d := testDataset(t,
		[]string{"SchoolID", "District", "Legislative.District"},
		nil,
	)
	rec := Record{"SchoolID": "1", "District": "Laoag East", "Legislative.District": "1st District"}

	// "district" is contained in both headers; header order decides
	if got := d.FieldValue(rec, "district"); got != "Laoag East" {
		t.Errorf("FieldValue(district) = %q, want %q", got, "Laoag East")
	}
}

func TestFirstFieldValue(t *testing.T) {
	withLegDistrict := testDataset(t,
		[]string{"SchoolID", "LegDistrict", "Legislative.District"},
		nil,
	)
	rec := Record{"SchoolID": "1", "LegDistrict": "2nd District", "Legislative.District": "1st District"}
	if got := withLegDistrict.FirstFieldValue(rec, "legdistrict", "legislative"); got != "2nd District" {
		t.Errorf("FirstFieldValue = %q, want %q (legdistrict header preferred)", got, "2nd District")
	}

	legislativeOnly := testDataset(t,
		[]string{"SchoolID", "Legislative.District"},
		nil,
	)
	rec = Record{"SchoolID": "1", "Legislative.District": "1st District"}
	if got := legislativeOnly.FirstFieldValue(rec, "legdistrict", "legislative"); got != "1st District" {
		t.Errorf("FirstFieldValue = %q, want %q (fallback target)", got, "1st District")
	}

	// empty values fall through to the next target
	rec = Record{"SchoolID": "1", "Legislative.District": ""}
	if got := legislativeOnly.FirstFieldValue(rec, "legislative", "schoolid"); got != "1" {
		t.Errorf("FirstFieldValue = %q, want %q (empty value falls through)", got, "1")
	}
}
