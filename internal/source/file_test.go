package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
)

const yamlSnapshot = `
- name: web-1
  last_active: "2024-05-01T11:59:55Z"
  host:
    platform: ubuntu
    mem_total: 4096
  state:
    cpu: 42.5
    mem_used: 1024
  geoip:
    country_code: DE
- name: web-2
  last_active: 2024-05-01T10:00:00Z
`

func writeSnapshot(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSnapshot(t *testing.T) {
	t.Run("yaml list", func(t *testing.T) {
		raws, err := ParseSnapshot([]byte(yamlSnapshot))
		require.NoError(t, err)
		require.Len(t, raws, 2)

		assert.Equal(t, "web-1", raws[0].Name)
		assert.Equal(t, "2024-05-01T11:59:55Z", raws[0].LastActive)
		require.NotNil(t, raws[0].State)
		assert.Equal(t, 42.5, raws[0].State.CPU)
		assert.Equal(t, 4096.0, raws[0].Host.MemTotal)
		assert.Nil(t, raws[1].Host)
	})

	t.Run("saved dashboard response", func(t *testing.T) {
		raws, err := ParseSnapshot([]byte(serverList))
		require.NoError(t, err)
		require.Len(t, raws, 2)
		assert.Equal(t, "tokyo-1", raws[0].Name)
		assert.Equal(t, "jp", raws[0].GeoIP.CountryCode)
	})

	t.Run("json list", func(t *testing.T) {
		raws, err := ParseSnapshot([]byte(`[{"name":"a"},{"name":"b"}]`))
		require.NoError(t, err)
		require.Len(t, raws, 2)
		assert.Equal(t, "b", raws[1].Name)
	})

	t.Run("empty document", func(t *testing.T) {
		raws, err := ParseSnapshot(nil)
		require.NoError(t, err)
		assert.Empty(t, raws)
	})

	t.Run("failed response", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`{"success": false, "error": "unauthorized"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unauthorized")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseSnapshot([]byte("just some words"))
		assert.Error(t, err)
	})
}

func TestFile_Servers(t *testing.T) {
	path := writeSnapshot(t, "servers.yaml", yamlSnapshot)

	f := NewFile(path)
	f.SetClock(func() time.Time { return fixedNow })

	servers, err := f.Servers(context.Background())
	require.NoError(t, err)
	require.Len(t, servers, 2)

	assert.True(t, servers[0].Online)
	assert.Equal(t, "ubuntu", servers[0].Platform)
	assert.Equal(t, 25.0, servers[0].RAMPercent())
	assert.False(t, servers[1].Online)
	assert.Equal(t, 1.0, servers[1].MemTotal)
}

func TestFile_RereadsOnEveryCall(t *testing.T) {
	path := writeSnapshot(t, "servers.json", `[{"name":"first"}]`)
	f := NewFile(path)

	servers, err := f.Servers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", servers[0].Name)

	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"second"}]`), 0644))
	servers, err = f.Servers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", servers[0].Name)
}

func TestFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFile(filepath.Join(t.TempDir(), "nope.yaml")).Servers(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrUpstream))
		assert.Contains(t, err.Error(), "Couldn't read snapshot")
	})

	t.Run("unparseable", func(t *testing.T) {
		path := writeSnapshot(t, "bad.yaml", "name: [unclosed")
		_, err := NewFile(path).Servers(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrUpstream))
		assert.Contains(t, err.Error(), "Couldn't parse snapshot")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewFile("unused").Servers(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
