package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
)

// Encode writes v as the JSON response body.
func Encode[T any](w http.ResponseWriter, r *http.Request, status int, v T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Decode reads the request body as JSON into a T. An empty body decodes to
// the zero value rather than an error, so filter endpoints work bare.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, nil
	}

	err := json.NewDecoder(r.Body).Decode(&v)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return v, nil
		}
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

var allowedOps = map[string]bool{
	"=": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"LIKE": true,
}

// validIdentifier reports whether s is safe to interpolate as a column name.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			continue
		}
		return false
	}
	return true
}

// BuildSearchQuery assembles a parameterized SELECT from a client-supplied
// filter. Column and operator names are validated before interpolation;
// values always travel as placeholders.
func BuildSearchQuery(tableName string, filter types.MySQLFilter) (string, []any, error) {
	query := fmt.Sprintf(`SELECT * FROM %s`, tableName)
	var values []any

	for idx, q := range filter.Query {
		if !validIdentifier(q.Column) {
			return "", nil, fmt.Errorf("invalid column name %q", q.Column)
		}
		if !allowedOps[q.Op] {
			return "", nil, fmt.Errorf("invalid operator %q", q.Op)
		}

		if idx == 0 {
			query += " WHERE "
		}

		query += fmt.Sprintf("%s %s ?", q.Column, q.Op)
		values = append(values, q.Query)

		if idx < len(filter.Query)-1 {
			query += " AND "
		}
	}

	if filter.OrderBy != "" {
		if !validIdentifier(filter.OrderBy) {
			return "", nil, fmt.Errorf("invalid column name %q", filter.OrderBy)
		}

		query += fmt.Sprintf(" ORDER BY %s", filter.OrderBy)
		if filter.Desc {
			query += " DESC"
		}
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return query, values, nil
}
