package query

import (
	"sort"

	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

// Join pairs every left row with every right row whose values at the
// named columns are equal and merges each pair into one synthetic row.
// Rows lacking the join column are skipped. Merged rows start from the
// left row's fields; right fields whose name is already taken are stored
// as "<rightTableName>_<field>" instead, so left names always win the
// unqualified key. Merged rows carry no id.
//
// The scan is a plain nested loop, O(|left| x |right|); no index or
// hash lookup is attempted.
func Join(left, right *table.Table, leftColumn, rightColumn string) []table.Row {
	var out []table.Row
	rightRows := right.Scan()
	for _, lrow := range left.Scan() {
		lval, present := lrow.Fields[leftColumn]
		if !present {
			continue
		}
		for _, rrow := range rightRows {
			rval, present := rrow.Fields[rightColumn]
			if !present {
				continue
			}
			if schema.Equal(lval, rval) {
				out = append(out, merge(lrow, rrow, right.Name()))
			}
		}
	}
	return out
}

// merge overlays the right row onto a copy of the left row's fields.
// Right fields are applied in sorted name order so the output is
// deterministic.
func merge(lrow, rrow table.Row, rightTable string) table.Row {
	fields := make(map[string]any, len(lrow.Fields)+len(rrow.Fields))
	for name, value := range lrow.Fields {
		fields[name] = value
	}

	names := make([]string, 0, len(rrow.Fields))
	for name := range rrow.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key := name
		if _, taken := fields[key]; taken {
			key = rightTable + "_" + name
		}
		fields[key] = rrow.Fields[name]
	}
	return table.Row{Fields: fields}
}
