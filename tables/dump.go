package tables

import (
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/bindgen/errors"
)

// Dump writes the effective tables as TOML. The output parses back into
// the same tables and can seed a replacement file.
func (t *Tables) Dump(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	enc.SetTablesInline(false)
	if err := enc.Encode(t); err != nil {
		return errors.Wrap(err, "failed to encode tables")
	}
	return nil
}
