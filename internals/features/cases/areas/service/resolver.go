package service

import (
	"strings"

	"medaid_backend/internals/features/cases/areas/model"

	"golang.org/x/text/unicode/norm"
)

type normalizedRow struct {
	area     string
	district string
	class    model.AreaClass
}

// Resolver classifies free-text areas against an AreaTable. It is immutable after
// construction and safe for concurrent use.
type Resolver struct {
	rows []normalizedRow
}

func NewResolver(table model.AreaTable) *Resolver {
	recs := table.Records()
	rows := make([]normalizedRow, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, normalizedRow{
			area:     Normalize(r.AreaName),
			district: Normalize(r.District),
			class:    r.Class,
		})
	}
	return &Resolver{rows: rows}
}

// Normalize lowercases, trims and collapses whitespace runs to a single space.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Resolve returns the priority tier for area (optionally scoped to district).
// The first table row that matches wins; no match yields model.DefaultPriority.
func (r *Resolver) Resolve(area, district string) model.Priority {
	if rec, ok := r.match(area, district); ok {
		return rec.class.Priority()
	}
	return model.DefaultPriority
}

// Class returns the matched area class, if any.
func (r *Resolver) Class(area, district string) (model.AreaClass, bool) {
	rec, ok := r.match(area, district)
	if !ok {
		return "", false
	}
	return rec.class, true
}

func (r *Resolver) match(area, district string) (normalizedRow, bool) {
	q := Normalize(area)
	if q == "" {
		return normalizedRow{}, false
	}
	d := Normalize(district)

	for _, row := range r.rows {
		if d != "" && row.district != d {
			continue
		}
		if areaMatches(row.area, q) {
			return row, true
		}
	}
	return normalizedRow{}, false
}

func areaMatches(ref, q string) bool {
	return ref == q ||
		strings.Contains(ref, q) ||
		strings.Contains(q, ref) ||
		strings.HasPrefix(q, ref) ||
		strings.HasPrefix(ref, q)
}
