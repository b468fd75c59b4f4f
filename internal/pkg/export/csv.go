package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
)

// ErrNoData is returned when there are no rows to export
var ErrNoData = errors.New("no data to export")

// Field is one named value of a row
type Field struct {
	Key   string
	Value any
}

// Row keeps its fields in column order
type Row []Field

// Get returns the value stored under key.
func (r Row) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field keys in order.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, f := range r {
		keys = append(keys, f.Key)
	}
	return keys
}

// RowsFrom converts a slice of structs (or struct pointers) into rows keyed
// by the fields' json names, in declaration order. Fields tagged "-" and
// unexported fields are skipped.
func RowsFrom(items any) ([]Row, error) {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("export: expected a slice, got %T", items)
	}

	rows := make([]Row, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := reflect.Indirect(v.Index(i))
		if item.Kind() != reflect.Struct {
			return nil, fmt.Errorf("export: expected struct elements, got %s", item.Kind())
		}

		t := item.Type()
		row := make(Row, 0, t.NumField())
		for j := 0; j < t.NumField(); j++ {
			sf := t.Field(j)
			if !sf.IsExported() {
				continue
			}
			key := sf.Name
			if tag, ok := sf.Tag.Lookup("json"); ok {
				name, _, _ := strings.Cut(tag, ",")
				if name == "-" {
					continue
				}
				if name != "" {
					key = name
				}
			}
			row = append(row, Field{Key: key, Value: item.Field(j).Interface()})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes a header taken from the first row's keys followed by one
// line per row. Keys missing from a later row and nil values are written
// as empty cells.
func WriteCSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		slog.Warn("CSV export skipped", "reason", ErrNoData.Error())
		return ErrNoData
	}

	header := rows[0].Keys()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, key := range header {
			value, _ := row.Get(key)
			record[i] = cellText(value)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func cellText(value any) string {
	value = cellValue(value)
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// cellValue dereferences pointers; nil pointers become nil.
func cellValue(value any) any {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
