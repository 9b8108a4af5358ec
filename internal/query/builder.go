// Package query builds conjunctive SQL predicates from optional filter
// inputs. Every clause carries placeholder markers bound to a positional
// argument list; caller supplied values are never interpolated into the
// clause text.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"brand-portal/internal/auth"

	"gorm.io/gorm"
)

type Builder struct {
	clauses []string
	args    []interface{}
}

func New() *Builder {
	return &Builder{}
}

// Where adds a raw clause with its bound arguments.
func (b *Builder) Where(clause string, args ...interface{}) *Builder {
	b.clauses = append(b.clauses, clause)
	b.args = append(b.args, args...)
	return b
}

// Eq adds an equality clause on column. Empty string values are treated as
// an absent filter and omitted.
func (b *Builder) Eq(column, value string) *Builder {
	if value == "" {
		return b
	}
	return b.Where(column+" = ?", value)
}

// EqID adds an equality clause on an integer id column from its string
// form. Empty values are an absent filter; non-numeric values bind id 0,
// which matches no row.
func (b *Builder) EqID(column, value string) *Builder {
	if value == "" {
		return b
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		id = 0
	}
	return b.Where(column+" = ?", id)
}

// Search adds a case-insensitive substring match across the given columns,
// combined by OR. Each column binds its own copy of the wildcarded term.
func (b *Builder) Search(term string, columns ...string) *Builder {
	if term == "" || len(columns) == 0 {
		return b
	}

	pattern := "%" + strings.ToLower(term) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, pattern)
	}
	return b.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// Visible restricts rows for non-admin callers with a brand affiliation to
// those matching the caller's brand or owned by the caller. Admins and
// callers without a brand see everything the other clauses allow.
func (b *Builder) Visible(caller auth.Identity, brandColumn, ownerColumn string) *Builder {
	if caller.IsAdmin() || caller.BrandID == nil {
		return b
	}
	return b.Where(
		fmt.Sprintf("(%s = ? OR %s = ?)", brandColumn, ownerColumn),
		*caller.BrandID, caller.UserID,
	)
}

// Clause returns the accumulated predicate and its positional arguments.
func (b *Builder) Clause() (string, []interface{}) {
	if len(b.clauses) == 0 {
		return "", nil
	}
	return strings.Join(b.clauses, " AND "), b.args
}

// Apply ANDs the predicate onto a gorm query.
func (b *Builder) Apply(db *gorm.DB) *gorm.DB {
	clause, args := b.Clause()
	if clause == "" {
		return db
	}
	return db.Where(clause, args...)
}
