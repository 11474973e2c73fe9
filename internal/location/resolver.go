package location

// Resolution 一次解析的完整结果：四级匹配值 + 各级候选列表
// One immutable value per call; callers never mutate it.
type Resolution struct {
	Region              string   `json:"region"`
	Province            string   `json:"province"`
	Municipality        string   `json:"municipality"`
	Barangay            string   `json:"barangay"`
	ProvinceOptions     []string `json:"provinceOptions"`
	MunicipalityOptions []string `json:"municipalityOptions"`
	BarangayOptions     []string `json:"barangayOptions"`
}

// Resolve 将自由文本的四级地名映射到规范层级
// Matching runs level by level: a hit adopts the canonical spelling and
// derives the next level's candidates from it; a miss keeps the raw value
// verbatim and leaves every deeper candidate list empty (the deeper raw
// values still pass through unsearched).
func Resolve(h Hierarchy, rawRegion, rawProvince, rawMunicipality, rawBarangay string) Resolution {
	res := Resolution{
		Region:              rawRegion,
		Province:            rawProvince,
		Municipality:        rawMunicipality,
		Barangay:            rawBarangay,
		ProvinceOptions:     []string{},
		MunicipalityOptions: []string{},
		BarangayOptions:     []string{},
	}

	res.Region = findMatch(h.Regions(), rawRegion)

	if _, ok := h[res.Region]; ok {
		res.ProvinceOptions = h.Provinces(res.Region)
		res.Province = findMatch(res.ProvinceOptions, rawProvince)
	}

	if _, ok := h[res.Region][res.Province]; ok {
		res.MunicipalityOptions = h.Municipalities(res.Region, res.Province)
		res.Municipality = findMatch(res.MunicipalityOptions, rawMunicipality)
	}

	if _, ok := h[res.Region][res.Province][res.Municipality]; ok {
		res.BarangayOptions = h.Barangays(res.Region, res.Province, res.Municipality)
		res.Barangay = findMatch(res.BarangayOptions, rawBarangay)
	}

	return res
}

// findMatch 在候选列表中查找与 value 规范化相等的第一项
// Returns the canonical option on a hit, the raw value untouched on a miss.
// An empty (after normalization) value never matches anything.
func findMatch(options []string, value string) string {
	norm := normalize(value)
	if norm == "" {
		return value
	}
	for _, opt := range options {
		if normalize(opt) == norm {
			return opt
		}
	}
	return value
}

// normalize 小写并去掉所有非 ASCII 字母数字字符
func normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		}
	}
	return string(out)
}
