package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KunBuFenZi/PicNezha/internal/record"
)

func TestLocal_Servers(t *testing.T) {
	l := NewLocal()
	l.SetSampleInterval(0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	servers, err := l.Servers(ctx)
	if err != nil {
		t.Skipf("host metrics unavailable here: %v", err)
	}
	require.Len(t, servers, 1)

	s := servers[0]
	assert.True(t, s.Online, "the local host is always fresh")
	assert.NotEmpty(t, s.Name)
	assert.Equal(t, record.UnknownCountry, s.CountryCode)
	assert.Greater(t, s.MemTotal, 0.0)
	assert.GreaterOrEqual(t, s.CPUPercent, 0.0)
	assert.GreaterOrEqual(t, s.NetIn, 0.0)
}

func TestLocal_RawShape(t *testing.T) {
	l := NewLocal()
	l.SetSampleInterval(0)
	l.now = func() time.Time { return fixedNow }

	raw, err := l.Raw(context.Background())
	if err != nil {
		t.Skipf("host metrics unavailable here: %v", err)
	}

	assert.Equal(t, "2024-05-01T12:00:00Z", raw.LastActive)
	require.NotNil(t, raw.Host)
	require.NotNil(t, raw.State)
	assert.Nil(t, raw.GeoIP)
	assert.True(t, record.Normalize(raw, fixedNow).Online)
}
