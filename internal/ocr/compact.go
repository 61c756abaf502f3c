package ocr

import (
	"encoding/json"
	"fmt"

	"choubo/internal/domain"
)

type compactLine struct {
	Content string `json:"content"`
}

type compactPage struct {
	PageNumber int           `json:"pageNumber"`
	Lines      []compactLine `json:"lines"`
}

type compactCell struct {
	Content     string `json:"content"`
	RowIndex    int    `json:"rowIndex"`
	ColumnIndex int    `json:"columnIndex"`
}

type compactTable struct {
	RowCount    int           `json:"rowCount"`
	ColumnCount int           `json:"columnCount"`
	Cells       []compactCell `json:"cells"`
}

type compactPayload struct {
	Content string         `json:"content"`
	Pages   []compactPage  `json:"pages"`
	Tables  []compactTable `json:"tables,omitempty"`
}

// CompactPayload projects a raw OCR document down to its text content:
// page lines and table cells, with geometry dropped. The output is a
// two-space-indented JSON string suitable for prompt embedding. The
// projection is deterministic; compacting the same document twice yields
// byte-identical output.
func CompactPayload(doc *domain.RawDocument) (string, error) {
	payload := compactPayload{
		Content: doc.Content,
		Pages:   make([]compactPage, 0, len(doc.Pages)),
	}

	for _, page := range doc.Pages {
		cp := compactPage{
			PageNumber: page.PageNumber,
			Lines:      make([]compactLine, 0, len(page.Lines)),
		}
		for _, line := range page.Lines {
			cp.Lines = append(cp.Lines, compactLine{Content: line.Content})
		}
		payload.Pages = append(payload.Pages, cp)
	}

	for _, table := range doc.Tables {
		ct := compactTable{
			RowCount:    table.RowCount,
			ColumnCount: table.ColumnCount,
			Cells:       make([]compactCell, 0, len(table.Cells)),
		}
		for _, cell := range table.Cells {
			ct.Cells = append(ct.Cells, compactCell{
				Content:     cell.Content,
				RowIndex:    cell.RowIndex,
				ColumnIndex: cell.ColumnIndex,
			})
		}
		payload.Tables = append(payload.Tables, ct)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal compact payload: %w", err)
	}
	return string(data), nil
}
