package repository

import (
	"fmt"
	"strings"
)

// updateBuilder assembles an UPDATE statement from the set of fields the
// caller actually supplied, keeping placeholders and arguments aligned.
// Values never end up interpolated into the query text.
type updateBuilder struct {
	table  string
	sets   []string
	wheres []string
	args   []interface{}
}

func newUpdateBuilder(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// Set adds a column assignment. A nil value writes SQL NULL.
func (b *updateBuilder) Set(column string, value interface{}) *updateBuilder {
	if value == nil {
		b.sets = append(b.sets, fmt.Sprintf("%s = NULL", column))
		return b
	}
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

// Where adds an equality condition.
func (b *updateBuilder) Where(column string, value interface{}) *updateBuilder {
	b.args = append(b.args, value)
	b.wheres = append(b.wheres, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

// WhereIn adds an IN condition over the provided values.
func (b *updateBuilder) WhereIn(column string, values ...interface{}) *updateBuilder {
	placeholders := make([]string, len(values))
	for i, v := range values {
		b.args = append(b.args, v)
		placeholders[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.wheres = append(b.wheres, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	return b
}

// Build renders the statement. ok is false when no assignment was added,
// letting callers skip the round trip instead of issuing an empty UPDATE.
func (b *updateBuilder) Build() (query string, args []interface{}, ok bool) {
	if len(b.sets) == 0 {
		return "", nil, false
	}
	query = fmt.Sprintf("UPDATE %s SET %s", b.table, strings.Join(b.sets, ", "))
	if len(b.wheres) > 0 {
		query += " WHERE " + strings.Join(b.wheres, " AND ")
	}
	return query, b.args, true
}
