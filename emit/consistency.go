package emit

import (
	"sort"

	"github.com/teranos/bindgen/binding"
	"github.com/teranos/bindgen/diag"
	"github.com/teranos/bindgen/model"
	"github.com/teranos/bindgen/tables"
)

// CheckConsistency compares the public name set of the header with what was
// documented. A public function is covered when it is documented, ignored or
// folded into its base; a documented function must be public. Mismatches are
// reported in name order and never stop emission.
func CheckConsistency(public []string, documented []model.RawFunction, res *binding.Resolution, tb *tables.Tables, diags *diag.List) {
	isPublic := make(map[string]bool, len(public))
	for _, name := range public {
		isPublic[name] = true
	}
	isDocumented := make(map[string]bool, len(documented))
	for _, fn := range documented {
		isDocumented[fn.Name] = true
	}

	var undocumented []string
	for name := range isPublic {
		if isDocumented[name] || tb.IsIgnored(name) || res.Folded(name) {
			continue
		}
		undocumented = append(undocumented, name)
	}
	sort.Strings(undocumented)
	for _, name := range undocumented {
		diags.Addf(diag.Consistency, name, "", "public function is not properly documented")
	}

	var private []string
	for name := range isDocumented {
		if !isPublic[name] {
			private = append(private, name)
		}
	}
	sort.Strings(private)
	for _, name := range private {
		diags.Addf(diag.Consistency, name, "", "documented function is not public")
	}
}
