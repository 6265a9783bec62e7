package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeServersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "servers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadServerList_Valid(t *testing.T) {
	path := writeServersFile(t, `{
		"servers": [
			{"name": "lobby", "address": "lobby.internal", "port": 19132},
			{"name": "survival-1", "address": "10.0.0.12", "port": 19133}
		]
	}`)

	list, err := LoadServerList(path)
	require.NoError(t, err)
	require.Len(t, list.Servers, 2)

	dest, found := list.Find("survival-1")
	assert.True(t, found)
	assert.Equal(t, "10.0.0.12", dest.Address)
	assert.Equal(t, 19133, dest.Port)

	_, found = list.Find("nowhere")
	assert.False(t, found)
}

func TestLoadServerList_MissingFileYieldsEmptyList(t *testing.T) {
	list, err := LoadServerList(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, list.Servers)
}

func TestLoadServerList_InvalidJSON(t *testing.T) {
	path := writeServersFile(t, `{"servers": [`)

	_, err := LoadServerList(path)
	assert.Error(t, err)
}

func TestLoadServerList_RejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing address",
			content: `{"servers": [{"name": "lobby", "port": 19132}]}`,
		},
		{
			name:    "port out of range",
			content: `{"servers": [{"name": "lobby", "address": "lobby.internal", "port": 70000}]}`,
		},
		{
			name:    "missing name",
			content: `{"servers": [{"address": "lobby.internal", "port": 19132}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeServersFile(t, tt.content)
			_, err := LoadServerList(path)
			assert.Error(t, err)
		})
	}
}
