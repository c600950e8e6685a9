// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCreds struct {
	APIKey   string `env:"TEST_API_KEY"`
	ClientID string `env:"TEST_CLIENT_ID"`
	Note     string
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "trims keys and values",
			input: "  TEST_API_KEY =  abc123  \nTEST_CLIENT_ID=cid\n",
			want:  map[string]string{"TEST_API_KEY": "abc123", "TEST_CLIENT_ID": "cid"},
		},
		{
			name:  "skips comments and blank lines",
			input: "# comment\n\n   # indented comment\nA=1\n",
			want:  map[string]string{"A": "1"},
		},
		{
			name:  "splits on first equals only",
			input: "URL=https://example.com/?a=b\n",
			want:  map[string]string{"URL": "https://example.com/?a=b"},
		},
		{
			name:  "ignores lines without separator",
			input: "garbage line\nB=2\n=novalue\n",
			want:  map[string]string{"B": "2"},
		},
		{
			name:  "empty value is kept",
			input: "EMPTY=\n",
			want:  map[string]string{"EMPTY": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse([]byte(tt.input)))
		})
	}
}

func TestLoaderBindPrefersEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "TEST_API_KEY=from-file\nTEST_CLIENT_ID=file-client\n")

	l := NewLoader(path)
	l.LookupEnv = fakeEnv(map[string]string{"TEST_API_KEY": "from-env", "TEST_CLIENT_ID": ""})

	var c testCreds
	require.NoError(t, l.Bind(&c))
	assert.Equal(t, "from-env", c.APIKey)
	assert.Equal(t, "file-client", c.ClientID, "empty env value falls back to file")
	assert.Empty(t, Missing(c))
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"))
	l.LookupEnv = fakeEnv(nil)

	var c testCreds
	require.NoError(t, l.Bind(&c))
	assert.Equal(t, []string{"TEST_API_KEY", "TEST_CLIENT_ID"}, Missing(&c))
	assert.Empty(t, l.File())
}

func TestLoaderReadsFileOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "TEST_API_KEY=first\n")

	l := NewLoader(path)
	l.LookupEnv = fakeEnv(nil)
	assert.Equal(t, "first", l.lookup("TEST_API_KEY"))

	writeFile(t, dir, ".env", "TEST_API_KEY=second\n")
	assert.Equal(t, "first", l.lookup("TEST_API_KEY"))
}

func TestMissingIgnoresUntaggedFields(t *testing.T) {
	got := Missing(testCreds{APIKey: "k", ClientID: "   "})
	assert.Equal(t, []string{"TEST_CLIENT_ID"}, got)
	assert.Nil(t, Missing("not a struct"))
}

func fakeEnv(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
