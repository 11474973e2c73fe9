// convert-schools converts the raw reference CSV into the compact JSON
// lookup document keyed by school id that the web clients bundle.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// columnMap 原始 CSV 表头 → 输出字段
var columnMap = map[string]string{
	"schoolName":   "School.Name",
	"region":       "Region",
	"division":     "Division",
	"district":     "District",
	"province":     "Province",
	"municipality": "Municipality",
	"legDistrict":  "Legislative.District",
	"barangay":     "Barangay",
}

const idColumn = "SchoolID"

func main() {
	in := flag.String("in", "schools.csv", "input CSV file")
	out := flag.String("out", "public/schools-db.json", "output JSON file")
	flag.Parse()

	if err := run(*in, *out); err != nil {
		fmt.Fprintln(os.Stderr, "convert-schools:", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}
	idIdx, ok := index[idColumn]
	if !ok {
		return fmt.Errorf("column %q missing in %s", idColumn, inPath)
	}

	results := make(map[string]map[string]string)
	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading row: %w", err)
		}
		if idIdx >= len(row) || row[idIdx] == "" {
			continue
		}

		rec := make(map[string]string, len(columnMap))
		for field, col := range columnMap {
			if i, ok := index[col]; ok && i < len(row) {
				rec[field] = row[i]
			} else {
				rec[field] = ""
			}
		}
		results[row[idIdx]] = rec
		count++
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("converted %d schools to %s\n", count, outPath)
	return nil
}
