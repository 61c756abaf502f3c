package ocr_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choubo/internal/domain"
	"choubo/internal/ocr"
)

func TestCompactPayload_KeepsTextDropsGeometry(t *testing.T) {
	doc := &domain.RawDocument{
		Content: "見積書 合計 5,500",
		Pages: []domain.RawPage{
			{PageNumber: 1, Lines: []domain.RawLine{{Content: "見積書"}, {Content: "合計 5,500"}}},
		},
		Tables: []domain.RawTable{
			{RowCount: 1, ColumnCount: 2, Cells: []domain.RawCell{
				{Content: "小計", RowIndex: 0, ColumnIndex: 0},
				{Content: "5,000", RowIndex: 0, ColumnIndex: 1},
			}},
		},
	}

	out, err := ocr.CompactPayload(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "見積書 合計 5,500", decoded["content"])
	assert.Contains(t, out, `"pageNumber": 1`)
	assert.Contains(t, out, `"rowIndex": 0`)
	assert.NotContains(t, out, "boundingBox")
}

func TestCompactPayload_Deterministic(t *testing.T) {
	doc := &domain.RawDocument{
		Content: "領収書",
		Pages: []domain.RawPage{
			{PageNumber: 1, Lines: []domain.RawLine{{Content: "領収書"}, {Content: "5,500円"}}},
		},
	}

	first, err := ocr.CompactPayload(doc)
	require.NoError(t, err)
	second, err := ocr.CompactPayload(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompactPayload_EmptyDocument(t *testing.T) {
	out, err := ocr.CompactPayload(&domain.RawDocument{})
	require.NoError(t, err)

	assert.Contains(t, out, `"content": ""`)
	assert.Contains(t, out, `"pages": []`)
	assert.NotContains(t, out, `"tables"`)
}
