package facts

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// TSVOptions controls how a TSVSink lays out its files.
type TSVOptions struct {
	// Headers writes the column names as the first line of every file.
	Headers bool
	// Compress wraps every file in a zstd stream and uses the .tsv.zst suffix.
	Compress bool
}

// tsvFile is one open output stream.
type tsvFile struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// TSVSink writes one tab-separated file per table into a directory.
// Existing files of the same name are truncated.
type TSVSink struct {
	dir   string
	opts  TSVOptions
	files map[string]*tsvFile
}

// NewTSVSink creates dir if needed and opens every table file.
func NewTSVSink(dir string, opts TSVOptions) (*TSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("facts: cannot create directory %s: %w", dir, err)
	}

	s := &TSVSink{dir: dir, opts: opts, files: make(map[string]*tsvFile, len(Tables))}
	for _, table := range Tables {
		tf, err := s.open(table)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.files[table] = tf
	}
	return s, nil
}

// Path returns the file path used for table.
func (s *TSVSink) Path(table string) string {
	name := table + ".tsv"
	if s.opts.Compress {
		name += ".zst"
	}
	return filepath.Join(s.dir, name)
}

func (s *TSVSink) open(table string) (*tsvFile, error) {
	f, err := os.OpenFile(s.Path(table), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("facts: cannot open %s: %w", table, err)
	}

	tf := &tsvFile{f: f}
	var out io.Writer = f
	if s.opts.Compress {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("facts: cannot start zstd stream for %s: %w", table, err)
		}
		tf.enc = enc
		out = enc
	}
	tf.w = bufio.NewWriterSize(out, 128*1024)

	if s.opts.Headers {
		if err := writeLine(tf.w, Columns[table]); err != nil {
			_ = tf.close()
			return nil, fmt.Errorf("facts: cannot write header of %s: %w", table, err)
		}
	}
	return tf, nil
}

func writeLine(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, "\t")); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// fielder is implemented by every row type.
type fielder interface {
	Fields() []string
}

func writeRows[R fielder](s *TSVSink, table string, rows []R) error {
	tf, ok := s.files[table]
	if !ok {
		return fmt.Errorf("facts: %s is closed", table)
	}
	for _, row := range rows {
		if err := writeLine(tf.w, row.Fields()); err != nil {
			return fmt.Errorf("facts: cannot write %s: %w", table, err)
		}
	}
	return nil
}

func (s *TSVSink) MapPoints(rows []MapPointRow) error { return writeRows(s, TableMapPoint, rows) }
func (s *TSVSink) Items(rows []ItemRow) error         { return writeRows(s, TableItem, rows) }
func (s *TSVSink) Robots(rows []RobotRow) error       { return writeRows(s, TableRobot, rows) }
func (s *TSVSink) Steps(rows []StepRow) error         { return writeRows(s, TableStep, rows) }
func (s *TSVSink) Memory(rows []MemoryRow) error      { return writeRows(s, TableMemory, rows) }
func (s *TSVSink) MapStates(rows []MapStateRow) error { return writeRows(s, TableMapState, rows) }

// Close flushes and closes every file. It is safe to call more than once.
func (s *TSVSink) Close() error {
	var errs []error
	for table, tf := range s.files {
		if err := tf.close(); err != nil {
			errs = append(errs, fmt.Errorf("facts: cannot close %s: %w", table, err))
		}
		delete(s.files, table)
	}
	return errors.Join(errs...)
}

func (tf *tsvFile) close() error {
	var errs []error
	if err := tf.w.Flush(); err != nil {
		errs = append(errs, err)
	}
	if tf.enc != nil {
		if err := tf.enc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := tf.f.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
