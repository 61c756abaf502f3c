package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"choubo/internal/domain"
)

const (
	documentsSheet = "Documents"
	itemsSheet     = "Items"
)

var documentHeader = []interface{}{
	"Document ID", "Document Type", "Confidence", "Model",
	"Document Number", "Issue Date", "Subject",
	"Vendor Name", "Customer Name",
	"Subtotal", "Tax Amount", "Total Amount",
	"Created At",
}

var itemHeader = []interface{}{
	"Document ID", "Item Name", "Quantity", "Unit Price", "Amount", "Tax Rate",
}

// BuildWorkbook renders interpreted documents into an XLSX workbook with a
// summary sheet and a line-item detail sheet.
func BuildWorkbook(docs []domain.InterpretedDocument) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), documentsSheet); err != nil {
		return nil, fmt.Errorf("report.BuildWorkbook: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("report.BuildWorkbook: %w", err)
	}

	if err := f.SetSheetRow(documentsSheet, "A1", &documentHeader); err != nil {
		return nil, fmt.Errorf("report.BuildWorkbook: %w", err)
	}
	if err := f.SetSheetRow(itemsSheet, "A1", &itemHeader); err != nil {
		return nil, fmt.Errorf("report.BuildWorkbook: %w", err)
	}

	itemRow := 2
	for i := range docs {
		doc := &docs[i]

		row := []interface{}{
			doc.ID.String(), string(doc.DocumentType), string(doc.Confidence), doc.ModelUsed,
			"", "", "",
			doc.VendorName, doc.CustomerName,
			"", "", doc.TotalAmount,
			doc.CreatedAt.Format(time.RFC3339),
		}

		structured, err := doc.Structured()
		if err == nil {
			row[4] = structured.DocumentNumber
			row[5] = structured.IssueDate
			row[6] = structured.Subject
			row[9] = structured.Subtotal
			row[10] = structured.TaxAmount

			for j := range structured.Items {
				item := &structured.Items[j]
				cell, cerr := excelize.CoordinatesToCellName(1, itemRow)
				if cerr != nil {
					return nil, fmt.Errorf("report.BuildWorkbook: %w", cerr)
				}
				if err := f.SetSheetRow(itemsSheet, cell, &[]interface{}{
					doc.ID.String(), item.ItemName, item.Quantity, item.UnitPrice, item.Amount, item.TaxRate,
				}); err != nil {
					return nil, fmt.Errorf("report.BuildWorkbook: %w", err)
				}
				itemRow++
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("report.BuildWorkbook: %w", err)
		}
		if err := f.SetSheetRow(documentsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("report.BuildWorkbook: %w", err)
		}
	}

	return f, nil
}

// BuildFilename returns the download filename for an XLSX export.
func BuildFilename(companyID string) string {
	return fmt.Sprintf("%s_documents_%s.xlsx", companyID, time.Now().Format("2006-01-02"))
}
