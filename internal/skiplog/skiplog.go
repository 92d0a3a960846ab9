// Package skiplog appends every rejected source row to a CSV file so a run can
// be audited after the fact.
package skiplog

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/pkg/errors"
)

type Log struct {
	f       *os.File
	w       *csv.Writer
	enc     *csvutil.Encoder
	reasons map[string]int
}

// Open creates the file at path, parents included, and writes the header.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create dir %s", filepath.Dir(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	if err = enc.EncodeHeader(model.Rejection{}); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "write skip log header")
	}
	return &Log{f: f, w: w, enc: enc, reasons: make(map[string]int)}, nil
}

func (l *Log) Add(rejected ...model.Rejection) error {
	for _, r := range rejected {
		l.reasons[r.Reason]++
		if err := l.enc.Encode(r); err != nil {
			return errors.Wrapf(err, "write skip log line %d", r.Line)
		}
	}
	return nil
}

// Reasons returns how many rows were logged per reason.
func (l *Log) Reasons() map[string]int {
	out := make(map[string]int, len(l.reasons))
	for k, v := range l.reasons {
		out[k] = v
	}
	return out
}

func (l *Log) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		_ = l.f.Close()
		return errors.Wrap(err, "flush skip log")
	}
	return l.f.Close()
}
