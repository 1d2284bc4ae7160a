package source

import (
	"context"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/record"
)

// File reads servers from a snapshot on disk. The snapshot is either a list
// of server entries or a saved dashboard response ({success, data: [...]}),
// as YAML or JSON.
type File struct {
	path string
	now  func() time.Time
}

// NewFile creates a snapshot source for path.
func NewFile(path string) *File {
	return &File{path: path, now: time.Now}
}

// SetClock replaces the clock used to decide which servers are online.
func (f *File) SetClock(now func() time.Time) {
	f.now = now
}

// Servers reads, parses and normalizes the snapshot. The file is re-read on
// every call so a long-running server picks up changes.
func (f *File) Servers(ctx context.Context) ([]record.Server, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrUpstream, "Snapshot read cancelled", "")
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrUpstream,
			"Couldn't read snapshot "+f.path,
			"Check source.file or --input")
	}
	raws, err := ParseSnapshot(data)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrUpstream,
			"Couldn't parse snapshot "+f.path,
			"Save a dashboard /api/v1/server response or a list of servers")
	}
	return record.NormalizeAll(raws, f.now()), nil
}

// snapshotEnvelope is a saved dashboard response.
type snapshotEnvelope struct {
	Success *bool        `yaml:"success"`
	Data    []record.Raw `yaml:"data"`
	Error   string       `yaml:"error"`
}

// ParseSnapshot decodes a snapshot document. JSON is valid YAML, so one
// decoder reads both.
func ParseSnapshot(data []byte) ([]record.Raw, error) {
	var list []record.Raw
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var env snapshotEnvelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = "snapshot records a failed request"
		}
		return nil, errors.New(errors.ErrUpstream, "Snapshot holds an error response: "+msg, "")
	}
	return env.Data, nil
}
