// Package record turns raw dashboard server entries into the immutable
// snapshots the renderer draws. All defaulting of missing or malformed
// upstream fields happens here, in Normalize.
package record

import (
	"math"
	"strings"
	"time"
)

// Placeholders for missing upstream fields
const (
	UnknownName     = "Unknown"
	UnknownPlatform = "Unknown"
	UnknownCountry  = "UN"
)

// OnlineWindow is how recently a server must have reported to count as online.
const OnlineWindow = 10 * time.Second

// Server is one monitored server's normalized snapshot for a single render.
type Server struct {
	Name        string
	Online      bool
	Platform    string
	CountryCode string
	// Uptime in seconds
	Uptime     float64
	CPUPercent float64
	MemUsed    float64
	MemTotal   float64
	NetIn      float64
	NetOut     float64
}

// RAMPercent is MemUsed as a percentage of MemTotal. It is not clamped, so a
// reporting glitch can exceed 100.
func (s Server) RAMPercent() float64 {
	total := s.MemTotal
	if total <= 0 {
		total = 1
	}
	return s.MemUsed / total * 100
}

// Raw is a server entry as the dashboard API (or a snapshot file) returns it.
// Any part may be missing.
type Raw struct {
	ID         int64     `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	LastActive string    `json:"last_active" yaml:"last_active"`
	Host       *RawHost  `json:"host" yaml:"host"`
	State      *RawState `json:"state" yaml:"state"`
	GeoIP      *RawGeoIP `json:"geoip" yaml:"geoip"`
}

// RawHost is the static host description.
type RawHost struct {
	Platform string  `json:"platform" yaml:"platform"`
	Version  string  `json:"version" yaml:"version"`
	MemTotal float64 `json:"mem_total" yaml:"mem_total"`
}

// RawState is the latest reported host state.
type RawState struct {
	CPU            float64 `json:"cpu" yaml:"cpu"`
	MemUsed        float64 `json:"mem_used" yaml:"mem_used"`
	Uptime         float64 `json:"uptime" yaml:"uptime"`
	NetInTransfer  float64 `json:"net_in_transfer" yaml:"net_in_transfer"`
	NetOutTransfer float64 `json:"net_out_transfer" yaml:"net_out_transfer"`
}

// RawGeoIP is the server's geolocation.
type RawGeoIP struct {
	CountryCode string `json:"country_code" yaml:"country_code"`
}

// Normalize builds a Server from raw, applying every default:
//   - empty name, platform and country become UnknownName, UnknownPlatform, UnknownCountry
//   - a zero or missing MemTotal becomes 1 so RAM percentages never divide by zero
//   - negative or non-finite counters become 0; CPU is not clamped above 100
//   - Online means LastActive parsed and is within OnlineWindow of now
func Normalize(raw Raw, now time.Time) Server {
	s := Server{
		Name:        orDefault(raw.Name, UnknownName),
		Platform:    UnknownPlatform,
		CountryCode: UnknownCountry,
		MemTotal:    1,
		Online:      isOnline(raw.LastActive, now),
	}

	if raw.Host != nil {
		s.Platform = orDefault(raw.Host.Platform, UnknownPlatform)
		if total := counter(raw.Host.MemTotal); total > 0 {
			s.MemTotal = total
		}
	}
	if raw.GeoIP != nil {
		s.CountryCode = orDefault(raw.GeoIP.CountryCode, UnknownCountry)
	}
	if raw.State != nil {
		s.CPUPercent = counter(raw.State.CPU)
		s.MemUsed = counter(raw.State.MemUsed)
		s.Uptime = counter(raw.State.Uptime)
		s.NetIn = counter(raw.State.NetInTransfer)
		s.NetOut = counter(raw.State.NetOutTransfer)
	}
	return s
}

// NormalizeAll normalizes a list, keeping its order.
func NormalizeAll(raws []Raw, now time.Time) []Server {
	out := make([]Server, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw, now))
	}
	return out
}

func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

func counter(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isOnline(lastActive string, now time.Time) bool {
	if lastActive == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339Nano, lastActive)
	if err != nil {
		return false
	}
	return now.Sub(t) < OnlineWindow
}
