package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/value"
)

// ErrColumnNotFound is returned when no column has the requested name.
var ErrColumnNotFound = errors.New("column not found")

// ErrInvalidName is returned for an empty or whitespace-only column name.
var ErrInvalidName = errors.New("column name must not be empty")

// SaveColumn stores arr under name, replacing any column of that name.
// The replacement is atomic: readers see either the old or the new column.
//
// Elements are stored as RFC 8785 canonical JSON with their position. When
// arr is a *jsonarray.Array whose dtype carries a CUE schema, the schema
// source is stored too so LoadColumn restores the constraint.
func (s *Store) SaveColumn(ctx context.Context, name string, arr extension.Array[value.Object]) (ColumnInfo, error) {
	if strings.TrimSpace(name) == "" {
		return ColumnInfo{}, fmt.Errorf("save column: %w", ErrInvalidName)
	}

	elements := make([]string, arr.Len())
	for i := range elements {
		obj, err := arr.At(i)
		if err != nil {
			return ColumnInfo{}, fmt.Errorf("save column %q: %w", name, err)
		}
		text, err := marshalElement(obj)
		if err != nil {
			return ColumnInfo{}, fmt.Errorf("save column %q: element %d: %w", name, i, err)
		}
		elements[i] = text
	}

	id, err := uuid.NewV7()
	if err != nil {
		return ColumnInfo{}, fmt.Errorf("save column %q: generate id: %w", name, err)
	}

	info := ColumnInfo{
		ID:     id.String(),
		Name:   name,
		Dtype:  arr.Dtype().Name(),
		Length: len(elements),
		Digest: value.ColumnDigest(elements),
	}
	var schemaName, schemaText sql.NullString
	if ja, ok := arr.(*jsonarray.Array); ok && ja.JSONDtype().Schema() != nil {
		schema := ja.JSONDtype().Schema()
		info.SchemaName = schema.Source()
		schemaName = sql.NullString{String: schema.Source(), Valid: true}
		schemaText = sql.NullString{String: schema.Text(), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ColumnInfo{}, fmt.Errorf("save column %q: begin tx: %w", name, err)
	}
	defer tx.Rollback() // No-op if committed

	// Elements go with the old row via ON DELETE CASCADE
	replaced, err := tx.ExecContext(ctx, `DELETE FROM columns WHERE name = ?`, name)
	if err != nil {
		return ColumnInfo{}, fmt.Errorf("save column %q: delete previous: %w", name, err)
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(created_seq), 0) + 1 FROM columns`,
	).Scan(&info.Seq); err != nil {
		return ColumnInfo{}, fmt.Errorf("save column %q: allocate seq: %w", name, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO columns
		(id, name, dtype, length, digest, schema_name, schema_text, created_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		info.ID,
		info.Name,
		info.Dtype,
		info.Length,
		info.Digest,
		schemaName,
		schemaText,
		info.Seq,
	)
	if err != nil {
		return ColumnInfo{}, fmt.Errorf("save column %q: insert column: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO column_elements (column_id, position, element)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return ColumnInfo{}, fmt.Errorf("save column %q: prepare: %w", name, err)
	}
	defer stmt.Close()

	for i, text := range elements {
		if _, err := stmt.ExecContext(ctx, info.ID, i, text); err != nil {
			return ColumnInfo{}, fmt.Errorf("save column %q: insert element %d: %w", name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ColumnInfo{}, fmt.Errorf("save column %q: commit: %w", name, err)
	}

	n, _ := replaced.RowsAffected()
	s.logger.Info("column saved",
		"name", info.Name,
		"id", info.ID,
		"length", info.Length,
		"replaced", n > 0,
	)
	return info, nil
}

// DeleteColumn removes the column called name and its elements.
// Returns ErrColumnNotFound if there is no such column.
func (s *Store) DeleteColumn(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM columns WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete column %q: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete column %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete column %q: %w", name, ErrColumnNotFound)
	}

	s.logger.Info("column deleted", "name", name)
	return nil
}
