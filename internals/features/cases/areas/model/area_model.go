package model

import (
	"fmt"
	"strings"
)

/* ===================== Enums ===================== */

type AreaClass string

const (
	ClassLower  AreaClass = "Lower"
	ClassMiddle AreaClass = "Middle"
	ClassElite  AreaClass = "Elite"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultPriority is used when an area cannot be matched against the table.
const DefaultPriority = PriorityMedium

func ParseAreaClass(s string) (AreaClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lower":
		return ClassLower, nil
	case "middle":
		return ClassMiddle, nil
	case "elite":
		return ClassElite, nil
	}
	return "", fmt.Errorf("unknown area class %q", s)
}

func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	}
	return "", false
}

// Priority maps the socioeconomic class of an area to a case priority tier.
func (c AreaClass) Priority() Priority {
	switch c {
	case ClassLower:
		return PriorityHigh
	case ClassElite:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Rank orders priorities for display, High first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

/* ===================== Reference table ===================== */

type AreaRecord struct {
	AreaName string    `json:"area_name"`
	District string    `json:"district"`
	Class    AreaClass `json:"class"`
}

// AreaTable is the ordered, read-only area classification list. Order matters:
// the resolver takes the first matching row.
type AreaTable struct {
	records []AreaRecord
}

func NewAreaTable(records []AreaRecord) AreaTable {
	cp := make([]AreaRecord, len(records))
	copy(cp, records)
	return AreaTable{records: cp}
}

func (t AreaTable) Len() int { return len(t.records) }

// Records returns a copy of the rows in table order.
func (t AreaTable) Records() []AreaRecord {
	cp := make([]AreaRecord, len(t.records))
	copy(cp, t.records)
	return cp
}

// Districts lists distinct district names in first-seen order.
func (t AreaTable) Districts() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.records {
		if _, ok := seen[r.District]; ok {
			continue
		}
		seen[r.District] = struct{}{}
		out = append(out, r.District)
	}
	return out
}
