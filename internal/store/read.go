package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/value"
)

// ColumnInfo describes a stored column without its elements.
type ColumnInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dtype      string `json:"dtype"`
	Length     int    `json:"length"`
	Digest     string `json:"digest"`
	SchemaName string `json:"schema,omitempty"`
	Seq        int64  `json:"seq"`
}

// ErrDigestMismatch is returned when stored elements no longer match the
// digest recorded at save time.
var ErrDigestMismatch = errors.New("column digest mismatch")

// StatColumn returns the metadata of the column called name.
func (s *Store) StatColumn(ctx context.Context, name string) (ColumnInfo, error) {
	info, _, err := s.readColumnRow(ctx, name)
	if err != nil {
		return ColumnInfo{}, fmt.Errorf("stat column %q: %w", name, err)
	}
	return info, nil
}

// LoadColumn reads the column called name back into an array.
// Elements come back in position order, validated against the stored
// schema, and the result is checked against the stored digest.
func (s *Store) LoadColumn(ctx context.Context, name string) (*jsonarray.Array, error) {
	info, schemaText, err := s.readColumnRow(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load column %q: %w", name, err)
	}

	dtype, err := resolveDtype(info, schemaText)
	if err != nil {
		return nil, fmt.Errorf("load column %q: %w", name, err)
	}

	elements, texts, err := s.readElements(ctx, info.ID)
	if err != nil {
		return nil, fmt.Errorf("load column %q: %w", name, err)
	}
	if len(elements) != info.Length {
		return nil, fmt.Errorf("load column %q: %w: %d elements stored, %d recorded",
			name, ErrDigestMismatch, len(elements), info.Length)
	}
	if got := value.ColumnDigest(texts); got != info.Digest {
		return nil, fmt.Errorf("load column %q: %w", name, ErrDigestMismatch)
	}

	arr, err := jsonarray.NewWithDtype(dtype, elements)
	if err != nil {
		return nil, fmt.Errorf("load column %q: %w", name, err)
	}

	s.logger.Debug("column loaded", "name", name, "length", arr.Len())
	return arr, nil
}

// ListColumns returns every stored column ordered by name.
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListColumns(ctx context.Context) ([]ColumnInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, dtype, length, digest, schema_name, created_seq
		FROM columns
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	infos := []ColumnInfo{}
	for rows.Next() {
		var (
			info       ColumnInfo
			schemaName sql.NullString
		)
		if err := rows.Scan(&info.ID, &info.Name, &info.Dtype, &info.Length, &info.Digest, &schemaName, &info.Seq); err != nil {
			return nil, fmt.Errorf("list columns: scan: %w", err)
		}
		info.SchemaName = schemaName.String
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list columns: iterate: %w", err)
	}
	return infos, nil
}

func (s *Store) readColumnRow(ctx context.Context, name string) (ColumnInfo, sql.NullString, error) {
	var (
		info       ColumnInfo
		schemaName sql.NullString
		schemaText sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, dtype, length, digest, schema_name, schema_text, created_seq
		FROM columns
		WHERE name = ?
	`, name).Scan(&info.ID, &info.Name, &info.Dtype, &info.Length, &info.Digest, &schemaName, &schemaText, &info.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return ColumnInfo{}, sql.NullString{}, ErrColumnNotFound
	}
	if err != nil {
		return ColumnInfo{}, sql.NullString{}, fmt.Errorf("query column: %w", err)
	}
	info.SchemaName = schemaName.String
	return info, schemaText, nil
}

func (s *Store) readElements(ctx context.Context, columnID string) ([]value.Object, []string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, element
		FROM column_elements
		WHERE column_id = ?
		ORDER BY position ASC
	`, columnID)
	if err != nil {
		return nil, nil, fmt.Errorf("query elements: %w", err)
	}
	defer rows.Close()

	var (
		elements []value.Object
		texts    []string
	)
	for rows.Next() {
		var (
			position int
			text     string
		)
		if err := rows.Scan(&position, &text); err != nil {
			return nil, nil, fmt.Errorf("scan element: %w", err)
		}
		if position != len(elements) {
			return nil, nil, fmt.Errorf("%w: position %d missing", ErrDigestMismatch, len(elements))
		}
		obj, err := unmarshalElement(text)
		if err != nil {
			return nil, nil, fmt.Errorf("element %d: %w", position, err)
		}
		elements = append(elements, obj)
		texts = append(texts, text)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate elements: %w", err)
	}
	return elements, texts, nil
}

// resolveDtype rebuilds the column dtype from its stored name and schema.
func resolveDtype(info ColumnInfo, schemaText sql.NullString) (*jsonarray.Dtype, error) {
	dt, err := extension.ParseDtype(info.Dtype)
	if err != nil {
		return nil, err
	}
	if _, ok := dt.(*jsonarray.Dtype); !ok {
		return nil, fmt.Errorf("dtype %q is not a json dtype", info.Dtype)
	}
	if !schemaText.Valid {
		return jsonarray.DefaultDtype(), nil
	}

	schema, err := jsonarray.CompileSchema([]byte(schemaText.String), info.SchemaName)
	if err != nil {
		return nil, fmt.Errorf("restore schema: %w", err)
	}
	return jsonarray.NewDtype(jsonarray.WithSchema(schema)), nil
}
