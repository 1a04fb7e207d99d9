package querybuilder

import (
	"fmt"
	"strings"
)

// UpsertModel builds an INSERT ... ON CONFLICT statement from a db-tagged
// struct. Every non-conflict column is overwritten from EXCLUDED; a model
// whose columns are all conflict keys degrades to DO NOTHING.
func UpsertModel(table string, model any, conflictColumns []string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}

	suffix, err := ConflictUpdateSuffix(conflictColumns, cols)
	if err != nil {
		return "", nil, err
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// ConflictUpdateSuffix renders the ON CONFLICT clause for a last-write-wins
// upsert over the given column set.
func ConflictUpdateSuffix(conflictColumns, allColumns []string) (string, error) {
	if len(conflictColumns) == 0 {
		return "", fmt.Errorf("conflict columns are required")
	}

	keys := make(map[string]struct{}, len(conflictColumns))
	for _, col := range conflictColumns {
		col = strings.TrimSpace(col)
		if col == "" {
			return "", fmt.Errorf("conflict column cannot be empty")
		}
		keys[col] = struct{}{}
	}

	updates := make([]string, 0, len(allColumns))
	for _, col := range allColumns {
		if _, ok := keys[col]; ok {
			continue
		}
		updates = append(updates, col+" = EXCLUDED."+col)
	}

	var buf strings.Builder
	buf.WriteString("ON CONFLICT (")
	buf.WriteString(strings.Join(conflictColumns, ", "))
	buf.WriteString(")")

	if len(updates) == 0 {
		buf.WriteString(" DO NOTHING")
		return buf.String(), nil
	}

	buf.WriteString(" DO UPDATE SET ")
	buf.WriteString(strings.Join(updates, ", "))
	buf.WriteString(", updated_at = NOW()")
	return buf.String(), nil
}
