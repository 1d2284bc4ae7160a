// Package source fetches the server records a render draws: from a Nezha
// dashboard, a snapshot file, or the local host.
package source

import (
	"context"
	"fmt"

	"github.com/KunBuFenZi/PicNezha/internal/config"
	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/logger"
	"github.com/KunBuFenZi/PicNezha/internal/record"
)

// Source yields normalized records in display order.
type Source interface {
	Servers(ctx context.Context) ([]record.Server, error)
}

// New builds the source cfg selects.
func New(cfg *config.Config, log logger.Logger) (Source, error) {
	switch cfg.Source.Kind {
	case config.SourceNezha:
		return NewNezha(cfg.Nezha, log), nil
	case config.SourceFile:
		return NewFile(cfg.Source.File), nil
	case config.SourceLocal:
		return NewLocal(), nil
	}
	return nil, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown source %q", cfg.Source.Kind),
		"Use one of: nezha, file, local.")
}
