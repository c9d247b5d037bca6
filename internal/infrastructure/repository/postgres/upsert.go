package postgres

import "strings"

// overwriteOnConflict builds the ON CONFLICT clause shared by all
// normalized-entity upserts: every non-key column is unconditionally
// replaced with the incoming EXCLUDED value, and updated_at is bumped.
// The latest applied row always wins per column; there is no
// null-coalescing merge, so a null in a later row replaces a previously
// known value. Callers rely on that exact behavior.
func overwriteOnConflict(conflictColumns []string, columns []string) string {
	keys := make(map[string]struct{}, len(conflictColumns))
	for _, c := range conflictColumns {
		keys[c] = struct{}{}
	}

	var buf strings.Builder
	buf.WriteString("ON CONFLICT (")
	buf.WriteString(strings.Join(conflictColumns, ", "))
	buf.WriteString(") DO UPDATE SET ")

	first := true
	for _, col := range columns {
		if _, isKey := keys[col]; isKey {
			continue
		}
		if col == "updated_at" {
			continue
		}
		if !first {
			buf.WriteString(", ")
		}
		buf.WriteString(col)
		buf.WriteString(" = EXCLUDED.")
		buf.WriteString(col)
		first = false
	}
	if !first {
		buf.WriteString(", ")
	}
	buf.WriteString("updated_at = NOW()")

	return buf.String()
}
