// Package csvfile stores the order ledger and the client registry as
// semicolon-delimited text files that a spreadsheet can open directly.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
)

const (
	delimiter = ';'
	fileMode  = 0o644
	dirMode   = 0o755
)

// utf8BOM makes spreadsheet programs pick the right encoding for accented names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type openFunc func(name string, flag int, perm os.FileMode) (*os.File, error)

// table is one append-only delimited file with a fixed header.
type table struct {
	path    string
	columns []string
	open    openFunc
	log     zerolog.Logger
}

func newTable(path string, columns []string, log zerolog.Logger) *table {
	return &table{path: path, columns: columns, open: os.OpenFile, log: log}
}

// appendRows writes rows in a single Write call, preceded by the BOM and the
// header when the file is still empty.
func (t *table) appendRows(rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), dirMode); err != nil {
		return classify(err)
	}

	f, err := t.open(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return classify(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return classify(err)
	}

	var buf bytes.Buffer
	if info.Size() == 0 {
		buf.Write(utf8BOM)
		rows = append([][]string{t.columns}, rows...)
	}

	w := csv.NewWriter(&buf)
	w.Comma = delimiter
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("%w: encode rows: %v", domain.ErrStorage, err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return classify(err)
	}
	return classify(f.Close())
}

// readAll never fails on a missing, empty or unparsable file.
func (t *table) readAll() (domain.Dataset, error) {
	raw, err := os.ReadFile(t.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.log.Warn().Err(err).Str("path", t.path).Msg("store unreadable, returning empty dataset")
		}
		return domain.EmptyDataset(t.columns), nil
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
	r.Comma = delimiter
	r.FieldsPerRecord = 0
	records, err := r.ReadAll()
	if err != nil {
		t.log.Warn().Err(err).Str("path", t.path).Msg("store unparsable, returning empty dataset")
		return domain.EmptyDataset(t.columns), nil
	}
	if len(records) < 2 {
		return domain.EmptyDataset(t.columns), nil
	}

	return domain.Dataset{Columns: records[0], Rows: records[1:]}, nil
}

// export copies the file bytes to w unchanged.
func (t *table) export(w io.Writer) error {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrNoData
		}
		return classify(err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("%w: export %s: %v", domain.ErrStorage, filepath.Base(t.path), err)
	}
	return nil
}

// classify maps a file error to ErrLedgerLocked when another program holds the
// file, and to ErrStorage otherwise.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EBUSY) {
		return fmt.Errorf("%w (%v)", domain.ErrLedgerLocked, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
