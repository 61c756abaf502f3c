package domain

// DocumentType identifies the kind of business document being interpreted.
type DocumentType string

const (
	DocumentTypeInvoice         DocumentType = "invoice"
	DocumentTypeSupplierQuote   DocumentType = "supplier-quote"
	DocumentTypeReceipt         DocumentType = "receipt"
	DocumentTypePurchaseInvoice DocumentType = "purchase-invoice"
	DocumentTypeParkingReceipt  DocumentType = "parking-receipt"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypeSupplierQuote, DocumentTypeReceipt,
		DocumentTypePurchaseInvoice, DocumentTypeParkingReceipt:
		return true
	}
	return false
}

// JapaneseLabel returns the document-type label used in prompts.
func (t DocumentType) JapaneseLabel() string {
	switch t {
	case DocumentTypeInvoice:
		return "請求書"
	case DocumentTypeSupplierQuote:
		return "見積書"
	case DocumentTypeReceipt:
		return "領収書"
	case DocumentTypePurchaseInvoice:
		return "仕入請求書"
	case DocumentTypeParkingReceipt:
		return "駐車場領収書"
	}
	return "書類"
}

// Confidence marks which pipeline path produced a StructuredDocument.
type Confidence string

const (
	ConfidenceLLM               Confidence = "llm"
	ConfidenceHeuristicFallback Confidence = "heuristic-fallback"
)

// ReceiptType distinguishes parking receipts from general ones.
type ReceiptType string

const (
	ReceiptTypeGeneral ReceiptType = "general"
	ReceiptTypeParking ReceiptType = "parking"
)
