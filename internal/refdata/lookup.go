package refdata

import "strings"

// Find 按学校编号查找参考记录
// Candidate ids are trimmed and truncated at the first "." before the exact
// compare (dataset ids carry suffix variants like "100001.1"); the first
// matching row wins. ok=false means not found, never an error.
func (d *Dataset) Find(targetID string) (Record, bool) {
	target := strings.TrimSpace(targetID)
	if target == "" {
		return nil, false
	}
	for _, rec := range d.rows {
		id := strings.TrimSpace(rec[d.idColumn])
		if i := strings.IndexByte(id, '.'); i >= 0 {
			id = id[:i]
		}
		if id == target {
			return rec, true
		}
	}
	return nil, false
}

// FieldValue 模糊提取字段值：第一个规范化名包含 target 的表头生效
// Header naming varies between dataset releases ("School Name",
// "School.Name", "school_name"); containment over normalized names
// tolerates all of them. A miss yields "", never a failure.
func (d *Dataset) FieldValue(rec Record, target string) string {
	want := normalize(target)
	if want == "" {
		return ""
	}
	for _, h := range d.headers {
		if strings.Contains(normalize(h), want) {
			return strings.TrimSpace(rec[h])
		}
	}
	return ""
}

// FirstFieldValue 按优先顺序尝试多个字段名，返回第一个非空值
// The order is part of the contract: e.g. legislative district prefers a
// "legdistrict" header over a "legislative" one.
func (d *Dataset) FirstFieldValue(rec Record, targets ...string) string {
	for _, t := range targets {
		if v := d.FieldValue(rec, t); v != "" {
			return v
		}
	}
	return ""
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
