package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"choubo/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Document ID",
	"Document Type",
	"Confidence",
	"Model",
	"Document Number",
	"Issue Date",
	"Subject",
	"Vendor Name",
	"Customer Name",
	"Subtotal",
	"Tax Amount",
	"Total Amount",
	"Line Item Count",
	"Receipt Type",
	"Source Image",
	"Created At",
}

// Writer wraps csv.Writer for exporting interpreted documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.InterpretedDocument) error {
	for i := range docs {
		row := documentToRow(&docs[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// documentToRow converts a single document to a string slice. If the
// stored structured data is invalid, metadata columns are filled and
// document columns are left empty.
func documentToRow(doc *domain.InterpretedDocument) []string {
	row := make([]string, len(columns))

	// Metadata columns (always filled)
	row[0] = doc.ID.String()
	row[1] = string(doc.DocumentType)
	row[2] = string(doc.Confidence)
	row[3] = doc.ModelUsed
	row[7] = doc.VendorName
	row[8] = doc.CustomerName
	row[11] = formatMoney(doc.TotalAmount)
	row[14] = formatBool(doc.SourceImageKey != "")
	row[15] = doc.CreatedAt.Format(time.RFC3339)

	structured, err := doc.Structured()
	if err != nil {
		return row
	}

	row[4] = structured.DocumentNumber
	row[5] = structured.IssueDate
	row[6] = structured.Subject
	row[9] = formatMoney(structured.Subtotal)
	row[10] = formatMoney(structured.TaxAmount)
	row[12] = strconv.Itoa(len(structured.Items))
	row[13] = string(structured.ReceiptType)

	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a company identifier for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_company_id}_documents_{YYYY-MM-DD}.csv
func BuildFilename(companyID string) string {
	sanitized := SanitizeFilename(companyID)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_documents_%s.csv", sanitized, date)
}
