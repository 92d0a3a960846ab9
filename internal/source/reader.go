// Package source reads the fixed-header delimited exports into raw rows and
// writes normalized rows back out.
package source

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type lined[T any] interface {
	*T
	setLine(int)
}

func ReadUsers(r io.Reader) ([]UserRow, error) {
	return decodeAll[UserRow](r)
}

func ReadCards(r io.Reader) ([]CardRow, error) {
	return decodeAll[CardRow](r)
}

func ReadTransactions(r io.Reader) ([]TransactionRow, error) {
	return decodeAll[TransactionRow](r)
}

// ReadFile opens path and decodes it with read.
func ReadFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open source file %s", path)
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read source file %s", path)
	}
	return rows, nil
}

// decodeAll decodes every record after the header. A header lacking any of
// the expected columns fails the whole read.
func decodeAll[T any, P lined[T]](r io.Reader) ([]T, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.ReuseRecord = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("source file is empty")
		}
		return nil, errors.Wrap(err, "read header")
	}
	dec.DisallowMissingColumns = true
	if err := requireColumns[T](dec.Header()); err != nil {
		return nil, err
	}

	var rows []T
	for {
		var v T
		err := dec.Decode(&v)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decode record %d", len(rows)+1)
		}
		line, _ := cr.FieldPos(0)
		P(&v).setLine(line)
		rows = append(rows, v)
	}
	return rows, nil
}

func requireColumns[T any](header []string) error {
	var zero T
	want, err := csvutil.Header(zero, "csv")
	if err != nil {
		return errors.Wrap(err, "build expected header")
	}
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[h] = struct{}{}
	}
	for _, col := range want {
		if _, ok := have[col]; !ok {
			return errors.Errorf("header is missing column %q", col)
		}
	}
	return nil
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == string(utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
