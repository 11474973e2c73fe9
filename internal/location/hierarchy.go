package location

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Hierarchy 行政区划层级：Region → Province → Municipality → Barangay 列表
// Loaded once at startup and treated as immutable afterwards.
type Hierarchy map[string]map[string]map[string][]string

// LoadHierarchy 从 JSON 文件加载层级数据
// Barangay lists are de-duplicated and sorted in place so every later read
// can return them as-is.
func LoadHierarchy(path string) (Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations file: %w", err)
	}

	var h Hierarchy
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse locations file: %w", err)
	}

	for _, provinces := range h {
		for _, municipalities := range provinces {
			for name, barangays := range municipalities {
				municipalities[name] = dedupSorted(barangays)
			}
		}
	}
	return h, nil
}

// Regions 返回排序后的 region 列表
func (h Hierarchy) Regions() []string {
	return sortedKeys(h)
}

// Provinces 返回指定 region 下排序后的 province 列表
func (h Hierarchy) Provinces(region string) []string {
	provinces, ok := h[region]
	if !ok {
		return []string{}
	}
	return sortedKeys(provinces)
}

// Municipalities 返回指定 region/province 下排序后的市镇列表
func (h Hierarchy) Municipalities(region, province string) []string {
	provinces, ok := h[region]
	if !ok {
		return []string{}
	}
	municipalities, ok := provinces[province]
	if !ok {
		return []string{}
	}
	return sortedKeys(municipalities)
}

// Barangays 返回指定 region/province/municipality 下的 barangay 列表
func (h Hierarchy) Barangays(region, province, municipality string) []string {
	provinces, ok := h[region]
	if !ok {
		return []string{}
	}
	municipalities, ok := provinces[province]
	if !ok {
		return []string{}
	}
	barangays, ok := municipalities[municipality]
	if !ok {
		return []string{}
	}
	out := make([]string, len(barangays))
	copy(out, barangays)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
