package tables

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/teranos/bindgen/errors"
)

// ReadIgnoreCSV returns the first column of every non-empty row. Rows may
// carry further columns (a reason, an owner); they are ignored.
func ReadIgnoreCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	var names []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse ignore list")
		}
		if len(row) == 0 {
			continue
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// LoadIgnoreCSV extends t with the names listed in the CSV file at path.
// An empty path returns t unchanged.
func (t *Tables) LoadIgnoreCSV(path string) (*Tables, error) {
	if path == "" {
		return t, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapMissingInput(err, path)
	}
	defer f.Close()

	names, err := ReadIgnoreCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return t.WithIgnored(names), nil
}
