package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"stylemod/config"
	"stylemod/misc"
	"stylemod/state"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id       TEXT PRIMARY KEY,
	version  TEXT NOT NULL,
	started  TEXT NOT NULL,
	finished TEXT
);
CREATE TABLE IF NOT EXISTS sources (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id  TEXT NOT NULL REFERENCES runs(id),
	name    TEXT NOT NULL,
	kind    TEXT NOT NULL,
	charset TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS declarations (
	source_id INTEGER NOT NULL REFERENCES sources(id),
	position  INTEGER NOT NULL,
	property  TEXT NOT NULL,
	selector  TEXT NOT NULL,
	state     TEXT NOT NULL,
	min_width REAL,
	max_width REAL,
	kind      TEXT NOT NULL,
	text      TEXT NOT NULL,
	value     TEXT NOT NULL,
	PRIMARY KEY (source_id, position)
);
`

// DatabasePath returns name of the database all sources of a run are written
// to. When dst already has proper extension it is used as is.
func DatabasePath(dst string) string {
	if strings.EqualFold(filepath.Ext(dst), config.OutputFmtSqlite.Ext()) {
		return dst
	}
	return filepath.Join(dst, misc.GetAppName()+config.OutputFmtSqlite.Ext())
}

// databaseSink keeps every run in the same database, runs are told apart by
// run id. Overwrite request starts with the empty database.
type databaseSink struct {
	conn  *sqlite.Conn
	path  string
	runID uuid.UUID
	log   *zap.Logger
}

func newDatabaseSink(path string, env *state.LocalEnv, log *zap.Logger) (*databaseSink, error) {
	if env.Overwrite {
		if _, err := os.Stat(path); err == nil {
			log.Warn("Overwriting existing database", zap.String("file", path))
			if err := os.Remove(path); err != nil {
				return nil, err
			}
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prepare database schema: %w", err)
	}

	s := &databaseSink{conn: conn, path: path, runID: env.RunID, log: log}
	err = sqlitex.Execute(conn, `INSERT INTO runs (id, version, started) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{s.runID.String(), misc.GetVersion(), time.Now().UTC().Format(time.RFC3339)}})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("register run: %w", err)
	}
	log.Debug("Database opened", zap.String("file", path), zap.Stringer("run", s.runID))
	return s, nil
}

func (s *databaseSink) Write(ctx context.Context, src *Source) (_ string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := NewDocument(src, s.runID)
	defer sqlitex.Save(s.conn)(&err)

	err = sqlitex.Execute(s.conn, `INSERT INTO sources (run_id, name, kind, charset) VALUES (?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{doc.RunID, doc.Source, doc.Kind, doc.Charset}})
	if err != nil {
		return "", fmt.Errorf("store source: %w", err)
	}
	id := s.conn.LastInsertRowID()

	for i, d := range doc.Declarations {
		value, err := json.Marshal(d.Value)
		if err != nil {
			return "", fmt.Errorf("encode value of %s: %w", d.Property, err)
		}
		var minWidth, maxWidth any
		if d.Breakpoint != nil {
			if d.Breakpoint.MinWidth != nil {
				minWidth = *d.Breakpoint.MinWidth
			}
			if d.Breakpoint.MaxWidth != nil {
				maxWidth = *d.Breakpoint.MaxWidth
			}
		}
		err = sqlitex.Execute(s.conn, `INSERT INTO declarations
			(source_id, position, property, selector, state, min_width, max_width, kind, text, value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{id, i, d.Property, d.Selector, d.State, minWidth, maxWidth, d.Kind(), d.Text, string(value)}})
		if err != nil {
			return "", fmt.Errorf("store declaration %s: %w", d.Property, err)
		}
	}
	return s.path, nil
}

func (s *databaseSink) Close() error {
	err := sqlitex.Execute(s.conn, `UPDATE runs SET finished = ? WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{time.Now().UTC().Format(time.RFC3339), s.runID.String()}})
	return multierr.Append(err, s.conn.Close())
}
