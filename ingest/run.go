// Package ingest finds stylesheet sources, extracts and classifies their
// declarations and hands results to the output.
package ingest

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"stylemod/archive"
	"stylemod/config"
	"stylemod/css"
	"stylemod/output"
	"stylemod/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("ingest")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := env.Cfg.Extract.Format
	if to := cmd.String("to"); len(to) > 0 {
		if format, err = config.ParseOutputFmt(to); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.Cfg.Extract.Format))
			format = env.Cfg.Extract.Format
		}
	}
	env.Format = format

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	env.CodePage = lookupCharset(cmd.String("force-zip-cp"), "Forcefully converting all non UTF-8 file names in archives", log)
	// Stylesheets rarely declare their encoding
	env.Charset = lookupCharset(cmd.String("charset"), "Forcefully decoding all sources without byte order mark", log)

	env.PrepareExtractor()

	sink, err := output.New(format, dst, env)
	if err != nil {
		return fmt.Errorf("unable to prepare output: %w", err)
	}
	defer func() {
		multierr.AppendInvoke(&err, multierr.Close(sink))
		if format.PerRun() {
			env.Rpt.Store("results/"+filepath.Base(output.DatabasePath(dst)), output.DatabasePath(dst))
		}
	}()

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format), zap.Stringer("run", env.RunID))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, sink, log)
}

func lookupCharset(name, msg string, log *zap.Logger) encoding.Encoding {
	if len(name) == 0 {
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", name), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug(msg, zap.String("charset", n))
	return enc
}

// process handles the core extraction logic independently of CLI framework. It
// determines the input type (directory, archive, or single file) and processes
// accordingly.
func process(ctx context.Context, src, dst string, sink output.Sink, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if err := state.EnvFromContext(ctx).Rpt.StoreCopy("sources/"+filepath.Base(head), head); err != nil {
			log.Warn("Unable to store input copy in debug report", zap.String("path", head), zap.Error(err))
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, sink, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, filepath.ToSlash(tail), "", sink, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		kind, enc, err := isStyleFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if kind != kindNone && len(tail) == 0 {
			// source cannot have tail, encoding will be handled properly by
			// processSource
			if file, err := os.Open(head); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			} else {
				defer file.Close()
				if err := processSource(ctx, selectReader(file, enc), kind, enc, filepath.Base(head), sink, log); err != nil {
					log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
				}
			}
			break
		}
		return fmt.Errorf("input was not recognized as stylesheet or html document (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding stylesheet sources and archives and
// processes them.
func processDir(ctx context.Context, dir, dst string, sink output.Sink, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if info.IsDir() && path != dir && path == dst {
			// do not read our own output
			return filepath.SkipDir
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			count++
			if err := processArchive(ctx, path, "", filepath.Dir(relativePath(dir, path)), sink, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		kind, enc, err := isStyleFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if kind == kindNone {
			log.Debug("Skipping file, not recognized as stylesheet source or archive", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		if err := processSource(ctx, selectReader(file, enc), kind, enc, relativePath(dir, path), sink, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

func relativePath(dir, path string) string {
	return strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
}

// processArchive walks all files inside archive, finds stylesheet sources
// under "pathIn" and processes them. Results are put under "pathOut".
func processArchive(ctx context.Context, path, pathIn, pathOut string, sink output.Sink, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	env := state.EnvFromContext(ctx)

	err = archive.Walk(path, pathIn, env.CodePage, func(archive, name string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		kind, enc, err := isStyleInArchive(name, f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", name), zap.Error(err))
			return nil
		}
		if kind == kindNone {
			log.Debug("Skipping file, not recognized as stylesheet source", zap.String("archive", archive), zap.String("file", name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", name), zap.Error(err))
			return nil
		}
		defer r.Close()

		if err := processSource(ctx, selectReader(r, enc), kind, enc, filepath.Join(pathOut, filepath.FromSlash(name)), sink, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", name), zap.Error(err))
		}
		return nil
	})
	return err
}

// processSource processes single stylesheet source. "src" is part of the
// source path (always including file name) relative to the original path.
// When actual file was specified it will be just base file name without a
// path. When looking inside archive or directory it will be relative path
// inside archive or directory (including base file name).
func processSource(ctx context.Context, r io.Reader, kind sourceKind, enc srcEncoding, src string, sink output.Sink, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var (
		outputName string
		count      int
	)

	log.Info("Extraction starting", zap.String("from", src), zap.Stringer("kind", kind))
	defer func(start time.Time) {
		// malformed input should never stop processing of the remaining
		// sources
		if r := recover(); r != nil {
			log.Error("Extraction ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("extraction panic: %v", r)
		} else if rerr == nil {
			log.Info("Extraction completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.Int("declarations", count))
		}
	}(time.Now())

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("unable to read source (%s): %w", src, err)
	}

	text, charsetName, err := decodeText(data, kind, enc, env.Charset)
	if err != nil {
		return err
	}

	extractor := env.Extractor
	if extractor == nil {
		extractor = env.PrepareExtractor()
	}

	var decls []css.ParsedStyleDecl
	switch kind {
	case kindCSS:
		decls = extractor.Extract(text, src)
	case kindHTML:
		attributes := env.Cfg != nil && env.Cfg.Extract.StyleAttributes
		if decls, err = extractHTML(text, src, extractor, attributes, log); err != nil {
			return fmt.Errorf("unable to parse html source (%s): %w", src, err)
		}
	}
	count = len(decls)

	invalid := 0
	for _, d := range decls {
		if css.IsInvalid(d.Value) {
			invalid++
			log.Debug("Invalid value", zap.String("source", src), zap.String("key", d.Key()), zap.String("value", css.ToText(d.Value)))
		}
	}
	if invalid > 0 {
		log.Warn("Some values were rejected", zap.String("source", src), zap.Int("invalid", invalid), zap.Int("total", count))
	}

	source := &output.Source{
		Name:         src,
		Kind:         kind.String(),
		Charset:      charsetName,
		Declarations: decls,
	}
	outputName, err = sink.Write(ctx, source)
	if err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store extraction result for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(reportName("trees", src, ".txt"), []byte(source.String()))
		if !env.Format.PerRun() {
			env.Rpt.Store(reportName("results", src, env.Format.Ext()), outputName)
		}
	}
	return nil
}

// reportName builds debug report entry name for source path, keeping it
// inside dir whether src is absolute or climbs up with "..".
func reportName(dir, src, ext string) string {
	return dir + path.Clean("/"+filepath.ToSlash(src)) + ext
}
