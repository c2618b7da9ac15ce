package db

import "time"

// Row is one source row as scanned by the driver: column name to scalar.
// Accessors are lenient about driver types (sqlite hands back int64 for
// integer columns, and booleans arrive as 0/1) and return zero values for
// missing columns, mirroring the best-effort contract of the upstream
// dashboard.
type Row map[string]any

// Tables maps a source table name to its rows.
type Tables map[string][]Row

func (r Row) Has(col string) bool {
	v, ok := r[col]
	return ok && v != nil
}

func (r Row) String(col string) string {
	if v, ok := r[col].(string); ok {
		return v
	}
	return ""
}

func (r Row) Uint(col string) uint {
	switch v := r[col].(type) {
	case uint:
		return v
	case int:
		return uint(v)
	case int64:
		return uint(v)
	case uint64:
		return uint(v)
	case float64:
		return uint(v)
	}
	return 0
}

func (r Row) Int(col string) int {
	switch v := r[col].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (r Row) Float(col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	}
	return false
}

// Time parses a timestamp column. Drivers differ on whether DATETIME
// columns scan as time.Time or as a string, so both are accepted.
func (r Row) Time(col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// TimePtr is Time for nullable columns; nil means the column was NULL or
// absent, which the sign-in aggregation treats as "no end time".
func (r Row) TimePtr(col string) *time.Time {
	if !r.Has(col) {
		return nil
	}
	t := r.Time(col)
	if t.IsZero() {
		return nil
	}
	return &t
}
