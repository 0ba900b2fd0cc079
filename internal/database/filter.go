// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package database

import (
	"fmt"
	"strings"
)

// RecipeFilter contains filter parameters for recipe listing queries.
//
// All filter fields are optional and combine using AND logic. Tags use OR
// logic within the field (a recipe matches if it carries any of the given
// tags). Listing queries only ever return public, published recipes; the
// visibility gate is applied before filters and is not controllable by the
// caller.
//
// Sorting is restricted to an allow-list of columns (see sortColumns).
// An unrecognized SortBy is a validation error, never raw SQL.
//
// RecipeFilter is immutable after creation and safe for concurrent reads.
type RecipeFilter struct {
	Cuisine     string
	Difficulty  string
	Tags        []string
	AuthorID    string
	MaxPrepTime int     // minutes, 0 = no limit
	MaxCookTime int     // minutes, 0 = no limit
	MinRating   float64 // 0 = no limit
	Search      string  // case-insensitive substring on title or description

	SortBy    string // allow-listed field name, default "created_at"
	SortOrder string // "asc" or "desc", default "desc"
}

// sortColumns maps accepted sort field names to SQL columns. Both snake_case
// and camelCase spellings are accepted.
var sortColumns = map[string]string{
	"title":             "title",
	"rating":            "rating",
	"created_at":        "created_at",
	"createdAt":         "created_at",
	"updated_at":        "updated_at",
	"updatedAt":         "updated_at",
	"prep_time_minutes": "prep_time_minutes",
	"prepTime":          "prep_time_minutes",
	"cook_time_minutes": "cook_time_minutes",
	"cookTime":          "cook_time_minutes",
}

// ValidateSortField reports whether the given sort field is allow-listed.
// An empty field is valid and means the default (created_at).
func ValidateSortField(field string) error {
	if field == "" {
		return nil
	}
	if _, ok := sortColumns[field]; !ok {
		return fmt.Errorf("unknown sort field %q", field)
	}
	return nil
}

// buildWhereClause builds the parameterized WHERE clause for the filter.
// The public+published visibility gate is always the first condition.
func (f *RecipeFilter) buildWhereClause() (string, []interface{}) {
	clauses := []string{"is_public = TRUE", "is_published = TRUE"}
	args := []interface{}{}

	if f.Cuisine != "" {
		clauses = append(clauses, "cuisine = ?")
		args = append(args, f.Cuisine)
	}

	if f.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, f.Difficulty)
	}

	if f.AuthorID != "" {
		clauses = append(clauses, "author_id = ?")
		args = append(args, f.AuthorID)
	}

	if f.MaxPrepTime > 0 {
		clauses = append(clauses, "prep_time_minutes <= ?")
		args = append(args, f.MaxPrepTime)
	}

	if f.MaxCookTime > 0 {
		clauses = append(clauses, "cook_time_minutes <= ?")
		args = append(args, f.MaxCookTime)
	}

	if f.MinRating > 0 {
		clauses = append(clauses, "rating >= ?")
		args = append(args, f.MinRating)
	}

	if f.Search != "" {
		clauses = append(clauses, `(title ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(f.Search) + "%"
		args = append(args, pattern, pattern)
	}

	// Tags are stored comma-joined; a recipe matches if any requested tag
	// appears in its tag list.
	if len(f.Tags) > 0 {
		tagClauses := make([]string, 0, len(f.Tags))
		for _, tag := range f.Tags {
			if tag == "" {
				continue
			}
			tagClauses = append(tagClauses, `(',' || tags || ',') ILIKE ? ESCAPE '\'`)
			args = append(args, "%,"+escapeLike(tag)+",%")
		}
		if len(tagClauses) > 0 {
			clauses = append(clauses, "("+strings.Join(tagClauses, " OR ")+")")
		}
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// buildOrderClause builds the ORDER BY clause from the allow-listed sort
// field. Ties break on id so pagination is stable across pages.
func (f *RecipeFilter) buildOrderClause() string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		direction = "ASC"
	}

	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction)
}

// escapeLike escapes LIKE metacharacters in user-supplied search input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
