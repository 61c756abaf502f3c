package domain

// RawLine is a single recognized text line from the OCR service.
type RawLine struct {
	Content string `json:"content"`
}

// RawPage groups the recognized lines of one scanned page.
type RawPage struct {
	PageNumber int       `json:"pageNumber"`
	Lines      []RawLine `json:"lines"`
}

// RawCell is one table cell from the OCR layout analysis.
type RawCell struct {
	Content     string `json:"content"`
	RowIndex    int    `json:"rowIndex"`
	ColumnIndex int    `json:"columnIndex"`
}

// RawTable is a detected table with row/column-indexed cells.
type RawTable struct {
	RowCount    int       `json:"rowCount"`
	ColumnCount int       `json:"columnCount"`
	Cells       []RawCell `json:"cells"`
}

// RawDocument is the OCR service output as received: text content plus
// page/line/table structure. Geometry (bounding boxes, spans) is already
// absent from this projection; the pipeline never needs it.
type RawDocument struct {
	Content string         `json:"content"`
	Pages   []RawPage      `json:"pages"`
	Tables  []RawTable     `json:"tables,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// LineContents returns every non-empty line across all pages, in reading
// order. Most heuristics operate on this flat view.
func (d *RawDocument) LineContents() []string {
	var lines []string
	for _, page := range d.Pages {
		for _, line := range page.Lines {
			if line.Content != "" {
				lines = append(lines, line.Content)
			}
		}
	}
	return lines
}

// Party identifies one side of a business document.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Fax     string `json:"fax,omitempty"`
}

// LineItem is a priced row of a document. Rows without any of
// quantity/unit price/amount are remarks, not line items, and are moved
// to Notes during validation.
type LineItem struct {
	ItemName    string  `json:"itemName"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
	TaxRate     float64 `json:"taxRate,omitempty"`
	TaxAmount   float64 `json:"taxAmount,omitempty"`
	Remarks     string  `json:"remarks,omitempty"`
}

// HasNumericData reports whether the row carries at least one of
// quantity, unit price, or amount.
func (i *LineItem) HasNumericData() bool {
	return i.Quantity != 0 || i.UnitPrice != 0 || i.Amount != 0
}

// BankTransferInfo holds the payment destination printed on invoices.
type BankTransferInfo struct {
	BankName       string `json:"bankName,omitempty"`
	BranchName     string `json:"branchName,omitempty"`
	AccountType    string `json:"accountType,omitempty"`
	AccountNumber  string `json:"accountNumber,omitempty"`
	AccountName    string `json:"accountName,omitempty"`
	SwiftCode      string `json:"swiftCode,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

// StructuredDocument is the interpretation result: a Japanese business
// document reconciled from OCR text. It is created fresh per request and
// never mutated afterwards.
type StructuredDocument struct {
	DocumentNumber string `json:"documentNumber"`
	IssueDate      string `json:"issueDate"`
	ValidityDate   string `json:"validityDate,omitempty"`
	Subject        string `json:"subject"`

	Vendor   Party `json:"vendor"`
	Customer Party `json:"customer"`

	Items []LineItem `json:"items"`

	Subtotal    float64 `json:"subtotal"`
	TaxAmount   float64 `json:"taxAmount"`
	TotalAmount float64 `json:"totalAmount"`

	// Invoice balance/carryover block.
	PreviousBalance      float64 `json:"previousBalance,omitempty"`
	CurrentPayment       float64 `json:"currentPayment,omitempty"`
	CarryoverAmount      float64 `json:"carryoverAmount,omitempty"`
	CurrentSales         float64 `json:"currentSales,omitempty"`
	CurrentInvoiceAmount float64 `json:"currentInvoiceAmount,omitempty"`

	DeliveryLocation string `json:"deliveryLocation,omitempty"`
	PaymentTerms     string `json:"paymentTerms,omitempty"`
	Notes            string `json:"notes,omitempty"`

	BankTransferInfo *BankTransferInfo `json:"bankTransferInfo,omitempty"`

	// Receipt-specific fields; ReceiptType is "parking" when the parking
	// keyword set matches.
	ReceiptType     ReceiptType `json:"receiptType,omitempty"`
	CompanyName     string      `json:"companyName,omitempty"`
	FacilityName    string      `json:"facilityName,omitempty"`
	EntryTime       string      `json:"entryTime,omitempty"`
	ExitTime        string      `json:"exitTime,omitempty"`
	ParkingDuration string      `json:"parkingDuration,omitempty"`
	BaseFee         float64     `json:"baseFee,omitempty"`
	AdditionalFee   float64     `json:"additionalFee,omitempty"`

	// Confidence marks whether the record came out of the LLM path or the
	// heuristic fallback synthesizer.
	Confidence Confidence `json:"confidence"`
}
