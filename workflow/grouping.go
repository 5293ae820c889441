package workflow

import (
	"strings"
	"unicode"

	"returns-app/models"

	"golang.org/x/exp/slices"
)

// Group is a batch of records tied to one piece of paperwork. Operators
// receive, inspect and close goods per group, not per line.
type Group struct {
	Key   string
	Items []models.ReturnRecord
}

// Rep is the representative item used for header display (branch, dates,
// customer). Siblings are assumed to share those attributes; this is a
// display convenience, not a structural guarantee.
func (g Group) Rep() models.ReturnRecord {
	return g.Items[0]
}

// normalizeKey strips all whitespace and lowercases, so that manually keyed
// references like "DOC 001" and "doc001" land in the same group.
func normalizeKey(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// GroupKey derives the grouping key of one record. Priority order:
// document no, collection order, NCR number, then the record's own number as
// a last resort (a group of one).
func GroupKey(item models.ReturnRecord) string {
	if k := normalizeKey(item.DocumentNo); k != "" {
		return k
	}
	if k := normalizeKey(item.CollectionOrderId); k != "" {
		return k
	}
	if k := normalizeKey(item.NcrNumber); k != "" {
		return k
	}
	return item.RecordNo
}

// GroupByDocument groups records by paperwork reference. Groups come back
// sorted by the representative item's date, most recent first; within a
// group the input order is preserved.
func GroupByDocument(items []models.ReturnRecord) []Group {
	index := make(map[string]int)
	groups := []Group{}

	for _, item := range items {
		key := GroupKey(item)
		if i, ok := index[key]; ok {
			groups[i].Items = append(groups[i].Items, item)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{Key: key, Items: []models.ReturnRecord{item}})
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		return strings.Compare(b.Rep().Date, a.Rep().Date)
	})

	return groups
}
