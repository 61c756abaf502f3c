package interpreter

import (
	"strings"

	"choubo/internal/domain"
	"choubo/internal/ocr"
)

// validateAndEnhance finalizes a parsed candidate against the raw OCR
// document: name and amount backfill, labeled-amount reconciliation,
// item/remark partition, and parking enrichment. Every branch has a
// deterministic default; this stage never fails.
func (i *Interpreter) validateAndEnhance(doc *domain.StructuredDocument, raw *domain.RawDocument) {
	lines := raw.LineContents()

	if nameMissing(doc.Vendor.Name) {
		if name := ocr.ExtractCompany(raw); name != "" {
			doc.Vendor.Name = name
		} else {
			doc.Vendor.Name = i.defaultVendorName
		}
	}

	// Customers keep an empty name when nothing carries an honorific.
	if nameMissing(doc.Customer.Name) {
		if name := ocr.ExtractCustomer(raw); name != "" {
			doc.Customer.Name = name
		}
	}

	// Printed amount labels are authoritative. A labeled 合計 is the
	// final payable value and replaces whatever the model produced, so a
	// model that summed subtotal and tax on top of a tax-inclusive total
	// is corrected here.
	amounts := ocr.FindLabeledAmounts(lines)
	if amounts.SubtotalFound {
		doc.Subtotal = amounts.Subtotal
	}
	if amounts.TaxFound {
		doc.TaxAmount = amounts.Tax
	}
	if amounts.TotalFound {
		doc.TotalAmount = amounts.Total
	}

	if doc.TotalAmount == 0 {
		doc.TotalAmount = ocr.ExtractTotalAmount(raw)
	}

	partitionItems(doc)

	if len(doc.Items) == 0 {
		doc.Items = []domain.LineItem{{
			ItemName:  "商品",
			Quantity:  1,
			UnitPrice: doc.TotalAmount,
			Amount:    doc.TotalAmount,
			TaxRate:   10,
			TaxAmount: doc.TaxAmount,
		}}
	}

	enhanceParking(doc, raw, lines)
}

func nameMissing(name string) bool {
	return name == "" || name == "不明"
}

// partitionItems moves rows without any numeric data out of items and
// into notes. Rows that survive are kept verbatim.
func partitionItems(doc *domain.StructuredDocument) {
	if len(doc.Items) == 0 {
		return
	}

	valid := make([]domain.LineItem, 0, len(doc.Items))
	var remarks []string
	for _, item := range doc.Items {
		if item.HasNumericData() {
			valid = append(valid, item)
			continue
		}
		if name := strings.TrimSpace(item.ItemName); name != "" {
			remarks = append(remarks, name)
		}
	}
	doc.Items = valid

	if len(remarks) > 0 {
		joined := strings.Join(remarks, "\n")
		if doc.Notes != "" {
			doc.Notes = doc.Notes + "\n\n" + joined
		} else {
			doc.Notes = joined
		}
	}
}

// enhanceParking forces the parking classification when the raw text
// matches the parking keyword set and fills time fields the model left
// empty by regex extraction over the notes and raw lines.
func enhanceParking(doc *domain.StructuredDocument, raw *domain.RawDocument, lines []string) {
	if !ocr.IsParkingReceipt(raw) {
		return
	}

	doc.ReceiptType = domain.ReceiptTypeParking
	if doc.CompanyName == "" {
		doc.CompanyName = doc.Vendor.Name
	}
	if doc.FacilityName == "" {
		doc.FacilityName = doc.Vendor.Name
	}

	source := doc.Notes + "\n" + strings.Join(lines, "\n")
	if doc.EntryTime == "" {
		doc.EntryTime = ocr.ExtractEntryTime(source)
	}
	if doc.ExitTime == "" {
		doc.ExitTime = ocr.ExtractExitTime(source)
	}
	if doc.ParkingDuration == "" {
		doc.ParkingDuration = ocr.ExtractParkingDuration(source)
	}
}
