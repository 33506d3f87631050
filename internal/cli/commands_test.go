package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/extarray/internal/store"
)

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(got))
}

// assertFailure checks err carries the given response code and exit code.
func assertFailure(t *testing.T, err error, code string, exit int) {
	t.Helper()
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.Message)
	assert.Equal(t, exit, GetExitCode(err))
}

func TestImport(t *testing.T) {
	db := newTestDB(t)
	path := writeFile(t, "parts.json", partsJSON)

	out, err := execute(t, "--db", db, "import", "parts", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ imported 5 element(s)")
	assert.Contains(t, out, "into parts")
}

func TestImport_Formats(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		args []string
	}{
		{name: "jsonl", file: "parts.jsonl", body: "{\"a\":1}\n\n{}\n{\"b\":[1,2]}\n"},
		{name: "yaml sequence", file: "parts.yaml", body: "- {a: 1}\n- {}\n- b: [1, 2]\n"},
		{name: "yaml stream", file: "parts.yml", body: "a: 1\n---\n{}\n---\nb: [1, 2]\n"},
		{name: "explicit format", file: "parts.txt", body: "[{\"a\":1},{},{\"b\":[1,2]}]", args: []string{"--input-format", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			importColumn(t, db, "col", tt.file, tt.body, tt.args...)

			out, err := execute(t, "--db", db, "show", "col")
			require.NoError(t, err)
			assert.Equal(t, "col: json, 3 element(s)\n0\t{\"a\":1}\n1\t{}\n2\t{\"b\":[1,2]}\n", out)
		})
	}
}

func TestImport_NFC(t *testing.T) {
	body := `[{"s": "cafe\u0301"}, {"s": "caf\u00e9"}]`

	db := newTestDB(t)
	importColumn(t, db, "exact", "words.json", body)
	importColumn(t, db, "nfc", "words.json", body, "--nfc")

	out, err := execute(t, "--db", db, "show", "exact")
	require.NoError(t, err)
	assert.Equal(t, "exact: json, 2 element(s)\n0\t{\"s\":\"cafe\u0301\"}\n1\t{\"s\":\"caf\u00e9\"}\n", out)

	out, err = execute(t, "--db", db, "show", "nfc")
	require.NoError(t, err)
	assert.Equal(t, "nfc: json, 2 element(s)\n0\t{\"s\":\"caf\u00e9\"}\n1\t{\"s\":\"caf\u00e9\"}\n", out)

	out, err = execute(t, "--db", db, "unique", "exact")
	require.NoError(t, err)
	assert.Equal(t, "0\t{\"s\":\"cafe\u0301\"}\n1\t{\"s\":\"caf\u00e9\"}\n", out)

	out, err = execute(t, "--db", db, "unique", "nfc")
	require.NoError(t, err)
	assert.Equal(t, "0\t{\"s\":\"caf\u00e9\"}\n", out)
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		args []string
		code string
		exit int
	}{
		{name: "unknown extension", file: "parts.txt", body: "[]", code: ErrCodeBadArgs, exit: ExitCommandError},
		{name: "bad input format", file: "parts.json", body: "[]", args: []string{"--input-format", "csv"}, code: ErrCodeBadArgs, exit: ExitCommandError},
		{name: "malformed json", file: "parts.json", body: "[{", code: ErrCodeParseFailed, exit: ExitCommandError},
		{name: "not a list", file: "parts.json", body: `{"a":1}`, code: ErrCodeParseFailed, exit: ExitCommandError},
		{name: "non-object element", file: "parts.json", body: `[{"a":1}, 2]`, code: ErrCodeTypeMismatch, exit: ExitFailure},
		{name: "missing schema", file: "parts.json", body: "[]", args: []string{"--schema", "testdata/nope.cue"}, code: ErrCodeSchema, exit: ExitCommandError},
		{name: "nfc key collision", file: "parts.json", body: `[{"\u00e9": 1, "e\u0301": 2}]`, args: []string{"--nfc"}, code: ErrCodeParseFailed, exit: ExitCommandError},
		{name: "schema rejects", file: "parts.json", body: `[{"name": "x", "qty": -1}]`, args: []string{"--schema", "testdata/part.cue"}, code: ErrCodeTypeMismatch, exit: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--db", newTestDB(t), "import", "col", writeFile(t, tt.file, tt.body)}, tt.args...)
			out, err := execute(t, args...)
			assertFailure(t, err, tt.code, tt.exit)
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}

func TestImport_MissingFile(t *testing.T) {
	_, err := execute(t, "--db", newTestDB(t), "import", "col", "testdata/nope.json")
	assertFailure(t, err, ErrCodeNotFound, ExitCommandError)
}

func TestShow(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "show", "parts")
	require.NoError(t, err)
	assertGolden(t, "show_parts", out)

	out, err = execute(t, "--db", db, "show", "parts", "--head", "2")
	require.NoError(t, err)
	assertGolden(t, "show_head", out)
}

func TestShow_WithSchema(t *testing.T) {
	db := newTestDB(t)
	importColumn(t, db, "typed", "typed.json", `[{"name":"gear","qty":2},{}]`, "--schema", "testdata/part.cue")

	out, err := execute(t, "--db", db, "show", "typed")
	require.NoError(t, err)
	assertGolden(t, "show_typed", out)
}

func TestShow_JSON(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "--format", "json", "show", "parts")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Column   store.ColumnInfo `json:"column"`
			Elements []map[string]any `json:"elements"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "parts", resp.Data.Column.Name)
	assert.Equal(t, 5, resp.Data.Column.Length)
	require.Len(t, resp.Data.Elements, 5)
	assert.Equal(t, map[string]any{"name": "nut", "qty": float64(10)}, resp.Data.Elements[1])
	assert.Empty(t, resp.Data.Elements[2])
}

func TestShow_NotFound(t *testing.T) {
	out, err := execute(t, "--db", newTestDB(t), "show", "nope")
	assertFailure(t, err, ErrCodeNotFound, ExitCommandError)
	assert.Contains(t, out, "column not found")
}

func TestShow_JSONError(t *testing.T) {
	out, err := execute(t, "--db", newTestDB(t), "--format", "json", "show", "nope")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestTake(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "take", "parts", "--indices=4,-1,-2", "--allow-fill")
	require.NoError(t, err)
	assertGolden(t, "take_fill", out)
}

func TestTake_NegativeWithoutFill(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "take", "parts", "--indices=-1,0")
	require.NoError(t, err)
	assert.Equal(t, "0\t{\"name\":\"washer\",\"qty\":1}\n1\t{\"name\":\"bolt\",\"qty\":3}\n", out)
}

func TestTake_FillValue(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "take", "parts", "--indices=1,-1", "--allow-fill", "--fill", `{"name":"none"}`)
	require.NoError(t, err)
	assert.Equal(t, "0\t{\"name\":\"nut\",\"qty\":10}\n1\t{\"name\":\"none\"}\n", out)
}

func TestTake_Save(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "take", "parts", "--indices=0,1", "--save", "firsts")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ saved 2 element(s) as firsts")

	out, err = execute(t, "--db", db, "show", "firsts")
	require.NoError(t, err)
	assert.Contains(t, out, "firsts: json, 2 element(s)")
}

func TestTake_Errors(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)
	importColumn(t, db, "empty", "empty.json", "[]")

	tests := []struct {
		name string
		args []string
		code string
		exit int
	}{
		{name: "out of range", args: []string{"take", "parts", "--indices=5"}, code: ErrCodeIndexOutOfRange, exit: ExitFailure},
		{name: "below fill marker", args: []string{"take", "parts", "--indices=-6", "--allow-fill"}, code: ErrCodeIndexOutOfRange, exit: ExitFailure},
		{name: "empty take", args: []string{"take", "empty", "--indices=0"}, code: ErrCodeEmptyTake, exit: ExitFailure},
		{name: "fill without allow-fill", args: []string{"take", "parts", "--indices=0", "--fill", "{}"}, code: ErrCodeBadArgs, exit: ExitCommandError},
		{name: "fill not an object", args: []string{"take", "parts", "--indices=0", "--allow-fill", "--fill", "[1]"}, code: ErrCodeBadArgs, exit: ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"--db", db}, tt.args...)...)
			assertFailure(t, err, tt.code, tt.exit)
		})
	}
}

func TestTake_EmptyWithFill(t *testing.T) {
	db := newTestDB(t)
	importColumn(t, db, "empty", "empty.json", "[]")

	out, err := execute(t, "--db", db, "take", "empty", "--indices=-1,-1", "--allow-fill")
	require.NoError(t, err)
	assert.Equal(t, "0\t{}\n1\t{}\n", out)
}

func TestReindex(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "reindex", "parts", "--labels=1,9,-3")
	require.NoError(t, err)
	assert.Equal(t, "0\t{\"name\":\"nut\",\"qty\":10}\n1\t{}\n2\t{}\n", out)
}

func TestUnique(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "unique", "parts", "--save", "kinds")
	require.NoError(t, err)
	assert.Equal(t,
		"0\t{\"name\":\"bolt\",\"qty\":3}\n1\t{\"name\":\"nut\",\"qty\":10}\n2\t{}\n3\t{\"name\":\"washer\",\"qty\":1}\n"+
			"✓ saved 4 element(s) as kinds\n",
		out)
}

func TestFactorize(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "factorize", "parts")
	require.NoError(t, err)
	assertGolden(t, "factorize", out)
}

func TestFactorize_JSON(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "--format", "json", "factorize", "parts")
	require.NoError(t, err)

	var resp struct {
		Data struct {
			Codes   []int            `json:"codes"`
			Uniques []map[string]any `json:"uniques"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []int{0, 1, -1, 0, 2}, resp.Data.Codes)
	assert.Len(t, resp.Data.Uniques, 3)
}

func TestArgsort(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "argsort", "parts")
	require.NoError(t, err)
	assertGolden(t, "argsort", out)
}

func TestConcat(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)
	importColumn(t, db, "more", "more.json", `[{"name":"gear","qty":2}]`)

	out, err := execute(t, "--db", db, "concat", "all", "parts", "more", "parts")
	require.NoError(t, err)
	assert.Contains(t, out, "5\t{\"name\":\"gear\",\"qty\":2}\n")
	assert.Contains(t, out, "✓ saved 11 element(s) as all")

	out, err = execute(t, "--db", db, "show", "all", "--head", "1")
	require.NoError(t, err)
	assert.Equal(t, "all: json, 11 element(s)\n0\t{\"name\":\"bolt\",\"qty\":3}\n", out)
}

func TestConcat_MissingPart(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	_, err := execute(t, "--db", db, "concat", "all", "parts", "nope")
	assertFailure(t, err, ErrCodeNotFound, ExitCommandError)

	_, err = execute(t, "--db", db, "show", "all")
	assertFailure(t, err, ErrCodeNotFound, ExitCommandError)
}

func TestList(t *testing.T) {
	db := newTestDB(t)

	out, err := execute(t, "--db", db, "list")
	require.NoError(t, err)
	assert.Equal(t, "no columns\n", out)

	importColumn(t, db, "typed", "typed.json", `[{"name":"gear","qty":2},{}]`, "--schema", "testdata/part.cue")
	importParts(t, db)

	out, err = execute(t, "--db", db, "list")
	require.NoError(t, err)
	assertGolden(t, "list", out)
}

func TestList_JSONEmpty(t *testing.T) {
	out, err := execute(t, "--db", newTestDB(t), "--format", "json", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"columns":[]}}`, out)
}

func TestDrop(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "drop", "parts")
	require.NoError(t, err)
	assert.Equal(t, "✓ dropped parts\n", out)

	_, err = execute(t, "--db", db, "drop", "parts")
	assertFailure(t, err, ErrCodeNotFound, ExitCommandError)
}

func TestValidate(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	out, err := execute(t, "--db", db, "validate", "parts", "--schema", "testdata/part.cue")
	require.NoError(t, err)
	assert.Equal(t, "✓ parts: 5 element(s) valid against testdata/part.cue\n", out)
}

func TestValidate_StoredSchema(t *testing.T) {
	db := newTestDB(t)
	importColumn(t, db, "typed", "typed.json", `[{"name":"gear","qty":2},{}]`, "--schema", "testdata/part.cue")

	out, err := execute(t, "--db", db, "validate", "typed")
	require.NoError(t, err)
	assert.Contains(t, out, "2 element(s) valid")
}

func TestValidate_Failures(t *testing.T) {
	db := newTestDB(t)
	importColumn(t, db, "bad", "bad.json", `[{"name":"x","qty":-1},{"name":"y","qty":2},{"qty":1}]`)

	out, err := execute(t, "--db", db, "validate", "bad", "--schema", "testdata/part.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeValidation)
	assert.Contains(t, out, "✗ bad: 2 of 3 element(s) invalid against testdata/part.cue")
	assert.Contains(t, out, "  0: ")
	assert.Contains(t, out, "  2: ")
	assert.NotContains(t, out, "  1: ")
}

func TestValidate_NoSchema(t *testing.T) {
	db := newTestDB(t)
	importParts(t, db)

	_, err := execute(t, "--db", db, "validate", "parts")
	assertFailure(t, err, ErrCodeBadArgs, ExitCommandError)
}
