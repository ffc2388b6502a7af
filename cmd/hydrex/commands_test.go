package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/hydrex"
)

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hydrex version dev")
	assert.Contains(t, out, "commit unknown")
}

func TestVersionCmd_SkipsConfig(t *testing.T) {
	// A broken config path must not matter for version.
	_, err := execute(t, "version", "--config", "/nonexistent/hydrex.yaml")
	require.NoError(t, err)
}

func TestMappingsCmd(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := execute(t, "mappings", "--env", "test", "--config", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "todo\tApp\\Todo", lines[0])
	assert.Equal(t, "todo_archive\tApp\\Todo", lines[1])
	assert.Equal(t, "note\tApp\\Note", lines[2])
}

func TestMappingsCmd_JSON(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := execute(t, "mappings", "--json", "--env", "test", "--config", path)
	require.NoError(t, err)

	var rows []mappingRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, mappingRow{Index: "todo", DomainKey: `App\Todo`}, rows[0])
}

func TestResolveCmd(t *testing.T) {
	path := writeConfig(t, testConfig)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"index", []string{"--index", "note"}, `App\Note`},
		{"domain key", []string{"--domain-key", `App\Todo`}, "todo"},
		{"domain key with separator", []string{"--domain-key", `\App\Todo`}, "todo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"resolve", "--env", "test", "--config", path}, tc.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, strings.TrimSpace(out))
		})
	}
}

func TestResolveCmd_Errors(t *testing.T) {
	path := writeConfig(t, testConfig)

	t.Run("unmapped index", func(t *testing.T) {
		_, err := execute(t, "resolve", "--index", "tasks", "--env", "test", "--config", path)
		require.Error(t, err)
		assert.ErrorIs(t, err, hydrex.ErrUnmappedIndex)
	})

	t.Run("unmapped domain key", func(t *testing.T) {
		_, err := execute(t, "resolve", "--domain-key", `App\Task`, "--env", "test", "--config", path)
		require.Error(t, err)
		var classErr *hydrex.UnmappedClassError
		require.True(t, errors.As(err, &classErr))
		assert.Equal(t, `App\Task`, classErr.DomainKey)
	})

	t.Run("no flag", func(t *testing.T) {
		_, err := execute(t, "resolve", "--env", "test", "--config", path)
		require.Error(t, err)
	})

	t.Run("both flags", func(t *testing.T) {
		_, err := execute(t, "resolve", "--index", "todo", "--domain-key", `App\Todo`, "--env", "test", "--config", path)
		require.Error(t, err)
	})
}

func TestGetCmd(t *testing.T) {
	path := writeConfig(t, testConfig)
	useTransport(t, &fakeTransport{docs: map[string]map[string]any{
		"todo/42": {"title": "buy milk", "done": false},
	}})

	out, err := execute(t, "get", "todo", "42", "--env", "test", "--config", path)
	require.NoError(t, err)

	var model map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &model))
	assert.Equal(t, "buy milk", model["title"])
	assert.Equal(t, false, model["done"])
}

func TestGetCmd_Errors(t *testing.T) {
	path := writeConfig(t, testConfig)
	useTransport(t, &fakeTransport{})

	_, err := execute(t, "get", "todo", "missing", "--env", "test", "--config", path)
	require.ErrorIs(t, err, hydrex.ErrDocumentNotFound)

	_, err = execute(t, "get", "todo", "--env", "test", "--config", path)
	require.Error(t, err, "requires two args")
}

func testHits(index string) []hydrex.RawHit {
	hit := func(id, title string, score float64) hydrex.RawHit {
		return hydrex.RawHit{
			Document: hydrex.RawDocument{ID: id, Index: index, Data: map[string]any{"title": title}},
			Score:    score,
		}
	}
	h := []hydrex.RawHit{hit("5", "five", 3.5), hit("3", "three", 2.25), hit("9", "nine", 1)}
	h[0].Highlight = map[string][]string{"title": {"<em>five</em>"}}
	return h
}

func TestSearchCmd_JSON(t *testing.T) {
	path := writeConfig(t, testConfig)
	f := &fakeTransport{hits: testHits("todo")}
	useTransport(t, f)

	out, err := execute(t, "search", "todo", "buy", "milk", "--json", "--from", "4", "--env", "test", "--config", path)
	require.NoError(t, err)

	assert.Equal(t, "buy milk", f.lastQ)
	assert.Equal(t, hydrex.SearchOptions{From: 4, Size: 2}, f.lastOpts, "size falls back to default_page_size")

	var hits []searchHit
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.Len(t, hits, 3)
	for i, id := range []string{"5", "3", "9"} {
		assert.Equal(t, id, hits[i].ID)
	}
	assert.Equal(t, map[string]any{"title": "five"}, hits[0].Model)
	assert.Equal(t, []string{"<em>five</em>"}, hits[0].Highlight["title"])
}

func TestSearchCmd_Table(t *testing.T) {
	path := writeConfig(t, testConfig)
	useTransport(t, &fakeTransport{hits: testHits("todo")})

	out, err := execute(t, "search", "todo", "--size", "3", "--env", "test", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[1] todo/5 (3.50)")
	assert.Contains(t, out, "title: <em>five</em>")
	assert.Contains(t, out, "[3] todo/9 (1.00)")
}

func TestSearchCmd_Empty(t *testing.T) {
	path := writeConfig(t, testConfig)
	useTransport(t, &fakeTransport{})

	out, err := execute(t, "search", "todo", "--env", "test", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_Raw(t *testing.T) {
	path := writeConfig(t, testConfig)
	useTransport(t, &fakeTransport{hits: testHits("nowhere")})

	// "nowhere" is not mapped, so only the raw builder can succeed.
	out, err := execute(t, "search", "nowhere", "--raw", "--json", "--env", "test", "--config", path)
	require.NoError(t, err)

	var hits []searchHit
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.Len(t, hits, 3)
	assert.Equal(t, map[string]any{"title": "three"}, hits[1].Model)
}

func TestSearchCmd_Validation(t *testing.T) {
	path := writeConfig(t, testConfig)
	useTransport(t, &fakeTransport{hits: testHits("todo")})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"size over max", []string{"todo", "--size", "6"}, "--size must not exceed 5"},
		{"negative from", []string{"todo", "--from", "-1"}, "--from must not be negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"search", "--env", "test", "--config", path}, tc.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	_, err := execute(t, "search", "--env", "test", "--config", path)
	require.Error(t, err, "index argument is required")
}

func TestSearchCmd_UnmappedIndex(t *testing.T) {
	path := writeConfig(t, testConfig)
	useTransport(t, &fakeTransport{hits: testHits("nowhere")})

	_, err := execute(t, "search", "nowhere", "--env", "test", "--config", path)
	require.ErrorIs(t, err, hydrex.ErrUnmappedIndex)
}

func TestServeCmd_Flags(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}
