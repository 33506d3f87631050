package store

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/value"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	col := createTestColumn(t)

	info, err := s.SaveColumn(ctx, "parts", col)
	require.NoError(t, err)
	assert.Equal(t, "parts", info.Name)
	assert.Equal(t, "json", info.Dtype)
	assert.Equal(t, 3, info.Length)
	assert.Equal(t, int64(1), info.Seq)
	assert.Empty(t, info.SchemaName)

	id, err := uuid.Parse(info.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	loaded, err := s.LoadColumn(ctx, "parts")
	require.NoError(t, err)
	assert.Equal(t, keysOf(t, col.Values()), keysOf(t, loaded.Values()))
	assert.Equal(t, []bool{false, true, false}, loaded.IsNA())

	// Integers above 2^53 keep their exact value
	third, err := loaded.At(2)
	require.NoError(t, err)
	assert.Equal(t, value.Int(9007199254740993), third["count"])
}

func TestSaveColumn_Empty(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.SaveColumn(ctx, "empty", jsonarray.MustNew())
	require.NoError(t, err)

	loaded, err := s.LoadColumn(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestSaveColumn_ReplacesExisting(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.SaveColumn(ctx, "parts", createTestColumn(t))
	require.NoError(t, err)

	replacement := jsonarray.MustNew(value.Object{"only": value.Bool(true)})
	second, err := s.SaveColumn(ctx, "parts", replacement)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	loaded, err := s.LoadColumn(ctx, "parts")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())

	var orphans int
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM column_elements WHERE column_id = ?", first.ID,
	).Scan(&orphans))
	assert.Zero(t, orphans, "old elements are removed with the old column")
}

func TestSaveColumn_InvalidName(t *testing.T) {
	s := createTestStore(t)
	for _, name := range []string{"", "   "} {
		_, err := s.SaveColumn(context.Background(), name, createTestColumn(t))
		require.ErrorIs(t, err, ErrInvalidName)
	}
}

func TestSaveColumn_CancelledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SaveColumn(ctx, "parts", createTestColumn(t))
	require.Error(t, err)

	_, err = s.LoadColumn(context.Background(), "parts")
	assert.ErrorIs(t, err, ErrColumnNotFound, "nothing is written")
}

func TestLoadColumn_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.LoadColumn(context.Background(), "missing")
	require.ErrorIs(t, err, ErrColumnNotFound)

	_, err = s.StatColumn(context.Background(), "missing")
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestLoadColumn_DetectsTampering(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	info, err := s.SaveColumn(ctx, "parts", createTestColumn(t))
	require.NoError(t, err)

	_, err = s.db.Exec(
		`UPDATE column_elements SET element = '{"name":"forged"}' WHERE column_id = ? AND position = 0`,
		info.ID,
	)
	require.NoError(t, err)

	_, err = s.LoadColumn(ctx, "parts")
	require.ErrorIs(t, err, ErrDigestMismatch)
}

func TestLoadColumn_DetectsMissingElement(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	info, err := s.SaveColumn(ctx, "parts", createTestColumn(t))
	require.NoError(t, err)

	_, err = s.db.Exec(`DELETE FROM column_elements WHERE column_id = ? AND position = 1`, info.ID)
	require.NoError(t, err)

	_, err = s.LoadColumn(ctx, "parts")
	require.ErrorIs(t, err, ErrDigestMismatch)
}

func TestSaveLoad_PreservesSchema(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	schema, err := jsonarray.CompileSchema([]byte(`#Element: {name: string, ...}`), "part.cue")
	require.NoError(t, err)
	dt := jsonarray.NewDtype(jsonarray.WithSchema(schema))
	col, err := jsonarray.NewWithDtype(dt, []value.Object{{"name": value.String("bolt")}})
	require.NoError(t, err)

	info, err := s.SaveColumn(ctx, "parts", col)
	require.NoError(t, err)
	assert.Equal(t, "part.cue", info.SchemaName)

	loaded, err := s.LoadColumn(ctx, "parts")
	require.NoError(t, err)
	require.NotNil(t, loaded.JSONDtype().Schema())
	assert.Equal(t, "part.cue", loaded.JSONDtype().Schema().Source())

	err = loaded.Set(extension.Position(0), value.Object{"name": value.Int(1)})
	require.Error(t, err)
	assert.True(t, extension.IsTypeMismatch(err), "restored schema still applies")
}

func TestListColumns(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	infos, err := s.ListColumns(ctx)
	require.NoError(t, err)
	assert.NotNil(t, infos)
	assert.Empty(t, infos)

	for _, name := range []string{"zeta", "Alpha", "beta"} {
		_, err := s.SaveColumn(ctx, name, createTestColumn(t))
		require.NoError(t, err)
	}

	infos, err = s.ListColumns(ctx)
	require.NoError(t, err)
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
		assert.Equal(t, 3, info.Length)
	}
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, names, "binary collation")

	stat, err := s.StatColumn(ctx, "beta")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stat.Seq)
}

func TestDeleteColumn(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	info, err := s.SaveColumn(ctx, "parts", createTestColumn(t))
	require.NoError(t, err)

	require.NoError(t, s.DeleteColumn(ctx, "parts"))

	_, err = s.LoadColumn(ctx, "parts")
	require.ErrorIs(t, err, ErrColumnNotFound)

	var remaining int
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM column_elements WHERE column_id = ?", info.ID,
	).Scan(&remaining))
	assert.Zero(t, remaining)

	err = s.DeleteColumn(ctx, "parts")
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestSaveColumn_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.SaveColumn(ctx, "parts", createTestColumn(t))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	loaded, err := s2.LoadColumn(ctx, "parts")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Len())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), WithLogger(logger))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.SaveColumn(context.Background(), "parts", createTestColumn(t))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "store opened")
	assert.Contains(t, out, "column saved")
	assert.Contains(t, out, "name=parts")
}
