package report_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choubo/internal/domain"
	"choubo/internal/report"
)

func workbookDoc(t *testing.T) domain.InterpretedDocument {
	t.Helper()
	structured, err := json.Marshal(domain.StructuredDocument{
		DocumentNumber: "INV-100",
		IssueDate:      "2025-04-01",
		Subject:        "印刷物",
		Vendor:         domain.Party{Name: "合同会社アソウタイセイプリンティング"},
		Customer:       domain.Party{Name: "株式会社CROP"},
		Items: []domain.LineItem{
			{ItemName: "名刺", Quantity: 2, UnitPrice: 1500, Amount: 3000, TaxRate: 10},
			{ItemName: "封筒", Quantity: 100, UnitPrice: 20, Amount: 2000, TaxRate: 10},
		},
		Subtotal:    5000,
		TaxAmount:   500,
		TotalAmount: 5500,
		Confidence:  domain.ConfidenceLLM,
	})
	require.NoError(t, err)

	return domain.InterpretedDocument{
		ID:             uuid.New(),
		CompanyID:      "company-1",
		DocumentType:   domain.DocumentTypeInvoice,
		StructuredData: structured,
		Confidence:     domain.ConfidenceLLM,
		ModelUsed:      "deepseek-chat",
		VendorName:     "合同会社アソウタイセイプリンティング",
		CustomerName:   "株式会社CROP",
		TotalAmount:    5500,
		CreatedAt:      time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildWorkbook(t *testing.T) {
	doc := workbookDoc(t)
	f, err := report.BuildWorkbook([]domain.InterpretedDocument{doc})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Documents", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Document ID", header)

	id, err := f.GetCellValue("Documents", "A2")
	require.NoError(t, err)
	assert.Equal(t, doc.ID.String(), id)

	number, err := f.GetCellValue("Documents", "E2")
	require.NoError(t, err)
	assert.Equal(t, "INV-100", number)

	total, err := f.GetCellValue("Documents", "L2")
	require.NoError(t, err)
	assert.Equal(t, "5500", total)

	// Both line items land on the detail sheet.
	item1, err := f.GetCellValue("Items", "B2")
	require.NoError(t, err)
	assert.Equal(t, "名刺", item1)

	item2, err := f.GetCellValue("Items", "B3")
	require.NoError(t, err)
	assert.Equal(t, "封筒", item2)
}

func TestBuildWorkbook_Empty(t *testing.T) {
	f, err := report.BuildWorkbook(nil)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Items", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Document ID", header)
}

func TestBuildFilename(t *testing.T) {
	name := report.BuildFilename("company-1")
	assert.Contains(t, name, "company-1_documents_")
	assert.Contains(t, name, ".xlsx")
}
