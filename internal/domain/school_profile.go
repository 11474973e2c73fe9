package domain

import "time"

// SchoolProfile 学校档案记录（与 sink 的 school_profiles 表一一对应）
// All attributes are free text as entered on the form; latitude/longitude are
// kept as strings because the source dataset carries them that way.
type SchoolProfile struct {
	SchoolID           string `json:"schoolId"`
	SchoolName         string `json:"schoolName"`
	Region             string `json:"region"`
	Province           string `json:"province"`
	Municipality       string `json:"municipality"`
	Barangay           string `json:"barangay"`
	Division           string `json:"division"`
	District           string `json:"district"`
	LegDistrict        string `json:"legDistrict"`
	MotherSchoolID     string `json:"motherSchoolId"`
	Latitude           string `json:"latitude"`
	Longitude          string `json:"longitude"`
	CurricularOffering string `json:"curricularOffering"`
	SubmittedBy        string `json:"submittedBy"`
}

// StoredProfile sink 侧已落库的档案（含服务端提交时间）
type StoredProfile struct {
	SchoolProfile
	SubmittedAt time.Time `json:"submittedAt"`
}

// Draft 自动填充草稿：预填的档案字段 + 级联下拉的候选列表
// Returned as one immutable value per lookup; the UI layer only renders it.
type Draft struct {
	Profile             SchoolProfile `json:"profile"`
	ProvinceOptions     []string      `json:"provinceOptions"`
	MunicipalityOptions []string      `json:"municipalityOptions"`
	BarangayOptions     []string      `json:"barangayOptions"`
}
