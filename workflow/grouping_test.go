package workflow

import (
	"testing"

	"returns-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupKeyPriority(t *testing.T) {
	item := models.ReturnRecord{
		RecordNo:          "RT2501010001",
		DocumentNo:        "DOC 001",
		CollectionOrderId: "COL-99",
		NcrNumber:         "NCR-2025-001",
	}
	assert.Equal(t, "doc001", GroupKey(item))

	item.DocumentNo = ""
	assert.Equal(t, "col-99", GroupKey(item))

	item.CollectionOrderId = ""
	assert.Equal(t, "ncr-2025-001", GroupKey(item))

	item.NcrNumber = ""
	assert.Equal(t, "RT2501010001", GroupKey(item))
}

func TestGroupKeyNormalizesManualEntry(t *testing.T) {
	a := models.ReturnRecord{RecordNo: "a", DocumentNo: "DOC 2024 001"}
	b := models.ReturnRecord{RecordNo: "b", DocumentNo: " doc2024001 "}
	c := models.ReturnRecord{RecordNo: "c", DocumentNo: "Doc\t2024-001"}

	assert.Equal(t, GroupKey(a), GroupKey(b))
	assert.NotEqual(t, GroupKey(a), GroupKey(c)) // a dash is data, not whitespace
}

func TestGroupByDocument(t *testing.T) {
	items := []models.ReturnRecord{
		{RecordNo: "r1", DocumentNo: "DOC-1", Date: "2025-01-03"},
		{RecordNo: "r2", NcrNumber: "NCR-7", Date: "2025-01-05"},
		{RecordNo: "r3", DocumentNo: "doc-1 ", Date: "2025-01-01"},
		{RecordNo: "r4", Date: "2025-01-04"},
	}

	groups := GroupByDocument(items)
	require.Len(t, groups, 3)

	// most recent paperwork first, by the representative (first seen) item
	assert.Equal(t, "ncr-7", groups[0].Key)
	assert.Equal(t, "r4", groups[1].Key)
	assert.Equal(t, "doc-1", groups[2].Key)

	// within a group, insertion order
	require.Len(t, groups[2].Items, 2)
	assert.Equal(t, "r1", groups[2].Items[0].RecordNo)
	assert.Equal(t, "r3", groups[2].Items[1].RecordNo)
	assert.Equal(t, "r1", groups[2].Rep().RecordNo)
}

func TestGroupByDocumentStableMembership(t *testing.T) {
	items := []models.ReturnRecord{
		{RecordNo: "r1", DocumentNo: "A 1", Date: "2025-02-01"},
		{RecordNo: "r2", DocumentNo: "a1", Date: "2025-02-02"},
		{RecordNo: "r3", CollectionOrderId: "B2", Date: "2025-02-03"},
	}

	membership := func(groups []Group) map[string][]string {
		m := map[string][]string{}
		for _, g := range groups {
			for _, it := range g.Items {
				m[g.Key] = append(m[g.Key], it.RecordNo)
			}
		}
		return m
	}

	first := membership(GroupByDocument(items))

	reversed := []models.ReturnRecord{items[2], items[1], items[0]}
	second := membership(GroupByDocument(reversed))

	for key, members := range first {
		assert.ElementsMatch(t, members, second[key], "group %s membership changed with input order", key)
	}
}

func TestGroupByDocumentEmpty(t *testing.T) {
	assert.Empty(t, GroupByDocument(nil))
}
