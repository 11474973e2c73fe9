package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoIDColumn 参考数据集缺少 SchoolID 列
var ErrNoIDColumn = errors.New("reference dataset has no SchoolID column")

// Record 参考数据集中的一行，按原始表头取值
type Record map[string]string

// Dataset 只读参考数据集（全部驻留内存，启动时加载一次）
// Header order is preserved: both the id-column discovery and the fuzzy
// field extraction are first-match-wins over that order.
type Dataset struct {
	headers  []string
	rows     []Record
	idColumn string
}

// New 从表头和行构建数据集
// Fails when no header normalizes to "schoolid": the dataset is unusable
// for lookups without it.
func New(headers []string, rows []Record) (*Dataset, error) {
	d := &Dataset{headers: headers, rows: rows}
	for _, h := range headers {
		if normalize(h) == "schoolid" {
			d.idColumn = h
			break
		}
	}
	if d.idColumn == "" {
		return nil, ErrNoIDColumn
	}
	return d, nil
}

// LoadFile 按扩展名加载 CSV 或 XLSX 参考数据集
func LoadFile(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadXLSX(path)
	default:
		return loadCSV(path)
	}
}

// Len 数据集行数
func (d *Dataset) Len() int { return len(d.rows) }

// Headers 原始表头（副本）
func (d *Dataset) Headers() []string {
	out := make([]string, len(d.headers))
	copy(out, d.headers)
	return out
}

func loadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schools file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []Record
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if rec, ok := buildRecord(headers, fields); ok {
			rows = append(rows, rec)
		}
	}
	return New(headers, rows)
}

func loadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schools file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("schools file %s has no sheets", path)
	}
	allRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("schools file %s is empty", path)
	}

	headers := allRows[0]
	var rows []Record
	for _, fields := range allRows[1:] {
		if rec, ok := buildRecord(headers, fields); ok {
			rows = append(rows, rec)
		}
	}
	return New(headers, rows)
}

// buildRecord 将一行映射到表头；全空行被跳过
func buildRecord(headers, fields []string) (Record, bool) {
	rec := make(Record, len(headers))
	empty := true
	for i, h := range headers {
		var v string
		if i < len(fields) {
			v = fields[i]
		}
		rec[h] = v
		if strings.TrimSpace(v) != "" {
			empty = false
		}
	}
	if empty {
		return nil, false
	}
	return rec, true
}
