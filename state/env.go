// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"stylemod/config"
	"stylemod/css"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// identifies single program run in produced outputs
	RunID uuid.UUID

	// used by extract subcommand
	NoDirs    bool
	Overwrite bool
	Format    config.OutputFmt
	Charset   encoding.Encoding // forced encoding of input files
	CodePage  encoding.Encoding // forced encoding of non UTF-8 file names in archives
	Extractor *css.Extractor

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// PrepareExtractor builds declaration extractor from the current
// configuration and logger.
func (e *LocalEnv) PrepareExtractor() *css.Extractor {
	var opts []css.ExtractorOption
	if e.Cfg != nil {
		opts = append(opts, css.WithKeptPrefixes(e.Cfg.Extract.KeepPrefixed...))
	}
	e.Extractor = css.NewExtractor(e.Log, opts...)
	return e.Extractor
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
