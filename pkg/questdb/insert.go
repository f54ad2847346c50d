package questdb

import (
	"context"
	"fmt"
	"strings"
)

// DefaultInsertChunk is the number of rows sent per INSERT statement by InsertRows.
const DefaultInsertChunk = 500

// InsertRows writes rows into table with multi-row INSERT statements of at most chunk rows.
// QuestDB does not accept COPY over the wire protocol, so this replaces CopyFrom.
func InsertRows(ctx context.Context, client QuestDBClient, table string, columns []string, rows [][]any, chunk int) (int64, error) {
	if chunk <= 0 {
		chunk = DefaultInsertChunk
	}

	var inserted int64
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))
		sql, args, err := buildInsert(table, columns, rows[start:end])
		if err != nil {
			return inserted, err
		}
		if err := client.Exec(ctx, sql, args...); err != nil {
			return inserted, fmt.Errorf("failed to insert rows %d-%d into %s: %w", start, end, table, err)
		}
		inserted += int64(end - start)
	}
	return inserted, nil
}

func buildInsert(table string, columns []string, rows [][]any) (string, []any, error) {
	var sb strings.Builder
	args := make([]any, 0, len(rows)*len(columns))

	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			args = append(args, v)
			fmt.Fprintf(&sb, "$%d", len(args))
		}
		sb.WriteByte(')')
	}
	return sb.String(), args, nil
}
