package source

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/record"
)

// Local reports the machine picnezha runs on as a single server.
type Local struct {
	sample time.Duration
	now    func() time.Time
}

// NewLocal creates a local host source that samples CPU for 200ms.
func NewLocal() *Local {
	return &Local{sample: 200 * time.Millisecond, now: time.Now}
}

// SetSampleInterval sets how long CPU usage is measured over. Zero compares
// against the previous call.
func (l *Local) SetSampleInterval(d time.Duration) {
	l.sample = d
}

// Raw snapshots the host in the dashboard's shape, so it goes through the
// same normalization as remote servers. Country is left unknown.
func (l *Local) Raw(ctx context.Context) (record.Raw, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return record.Raw{}, localErr(err, "host info")
	}
	percents, err := cpu.PercentWithContext(ctx, l.sample, false)
	if err != nil {
		return record.Raw{}, localErr(err, "CPU usage")
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return record.Raw{}, localErr(err, "memory usage")
	}
	counters, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return record.Raw{}, localErr(err, "network counters")
	}

	state := &record.RawState{
		MemUsed: float64(vm.Used),
		Uptime:  float64(info.Uptime),
	}
	if len(percents) > 0 {
		state.CPU = percents[0]
	}
	if len(counters) > 0 {
		state.NetInTransfer = float64(counters[0].BytesRecv)
		state.NetOutTransfer = float64(counters[0].BytesSent)
	}

	return record.Raw{
		Name:       info.Hostname,
		LastActive: l.now().Format(time.RFC3339Nano),
		Host: &record.RawHost{
			Platform: info.Platform,
			Version:  info.PlatformVersion,
			MemTotal: float64(vm.Total),
		},
		State: state,
	}, nil
}

// Servers returns the local host as the only record.
func (l *Local) Servers(ctx context.Context) ([]record.Server, error) {
	raw, err := l.Raw(ctx)
	if err != nil {
		return nil, err
	}
	return []record.Server{record.Normalize(raw, l.now())}, nil
}

func localErr(err error, what string) error {
	return errors.WrapWithCode(err, errors.ErrUpstream, "Couldn't read local "+what, "")
}
