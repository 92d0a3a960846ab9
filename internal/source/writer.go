package source

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/pkg/errors"
)

// WriteAll encodes rows with a header taken from T, even when rows is empty.
func WriteAll[T any](w io.Writer, rows []T) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	var zero T
	if err := enc.EncodeHeader(zero); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i := range rows {
		if err := enc.Encode(rows[i]); err != nil {
			return errors.Wrapf(err, "write row %d", i+1)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteFile[T any](path string, rows []T) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create dir %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := WriteAll(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
