package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylemod/config"
	"stylemod/state"
)

// Sink receives results of processing one source at a time.
type Sink interface {
	// Write stores declarations of a single source and returns name of the
	// file it went to.
	Write(ctx context.Context, src *Source) (string, error)
	Close() error
}

// New returns sink for requested format writing under dst. For formats which
// collect all sources of a run in a single output dst may name this output
// directly.
func New(format config.OutputFmt, dst string, env *state.LocalEnv) (Sink, error) {
	log := env.Log.Named("output")
	if format.PerRun() {
		return newDatabaseSink(DatabasePath(dst), env, log)
	}
	encode, err := newEncoder(format, env.Cfg.Extract.TextTemplate)
	if err != nil {
		return nil, err
	}
	return &fileSink{format: format, dst: dst, env: env, encode: encode, log: log}, nil
}

type fileSink struct {
	format config.OutputFmt
	dst    string
	env    *state.LocalEnv
	encode encodeFunc
	log    *zap.Logger
}

func (s *fileSink) Write(ctx context.Context, src *Source) (name string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := NewDocument(src, s.env.RunID)
	name = buildOutputPath(doc, s.dst, s.format, s.env)
	if err := prepareOutput(name, s.env.Overwrite, s.log); err != nil {
		return "", err
	}

	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("unable to create output file: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	if err := s.encode(f, doc); err != nil {
		return "", fmt.Errorf("unable to encode %s output: %w", s.format, err)
	}
	return name, nil
}

func (s *fileSink) Close() error {
	return nil
}

// prepareOutput makes sure file could be created: its directory exists and
// file itself either does not exist or could be overwritten.
func prepareOutput(name string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		if err = os.Remove(name); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}
