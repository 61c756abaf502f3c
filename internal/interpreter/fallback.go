package interpreter

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"choubo/internal/domain"
	"choubo/internal/ocr"
)

var (
	bareNumberPattern = regexp.MustCompile(`^\d+$`)
	numericPattern    = regexp.MustCompile(`[\d,]+`)
)

// Synthesize builds a best-effort StructuredDocument from positional
// heuristics over raw OCR lines, used when the completion path fails. A
// standalone numeric line is read as a quantity, the line before it as
// the item name, and the next numeric line as the amount. The result is
// always structurally valid and carries the heuristic-fallback
// confidence marker; this path never fails.
func (i *Interpreter) Synthesize(req Request) *domain.StructuredDocument {
	lines := req.Raw.LineContents()

	vendorName := ocr.ExtractCompany(req.Raw)
	if vendorName == "" {
		vendorName = i.defaultVendorName
	}
	customerName := ocr.ExtractCustomer(req.Raw)
	if customerName == "" {
		customerName = "顧客名不明"
	}
	totalAmount := ocr.ExtractTotalAmount(req.Raw)

	var subject string
	for _, line := range lines {
		if strings.Contains(line, "件名") && strings.Contains(line, ":") {
			subject = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
			break
		}
	}
	if subject == "" {
		subject = "印刷物"
	}

	items := synthesizeItems(lines)
	if len(items) == 0 {
		amount := totalAmount
		if amount == 0 {
			amount = 5000
		}
		items = []domain.LineItem{{
			ItemName:  "商品名不明",
			Quantity:  1,
			UnitPrice: amount,
			Amount:    amount,
			TaxRate:   10,
			TaxAmount: math.Floor(amount * 0.1),
		}}
	}

	subtotal := 5000.0
	taxAmount := 500.0
	if totalAmount > 0 {
		subtotal = totalAmount / 1.1
		taxAmount = totalAmount - subtotal
	} else {
		totalAmount = 5500
	}

	doc := &domain.StructuredDocument{
		DocumentNumber: fmt.Sprintf("FALLBACK-%d", time.Now().UnixMilli()),
		IssueDate:      time.Now().Format("2006-01-02"),
		Subject:        subject,
		Vendor:         domain.Party{Name: vendorName},
		Customer:       domain.Party{Name: customerName},
		Items:          items,
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		TotalAmount:    totalAmount,
		Notes:          "AI解析に失敗したため、フォールバック処理を実行しました",
		Confidence:     domain.ConfidenceHeuristicFallback,
	}

	enhanceParking(doc, req.Raw, lines)
	return doc
}

// synthesizeItems pairs each standalone numeric line with its
// neighbors: the preceding line names the item, the following numeric
// line is the amount, and unit price is back-computed by integer
// division.
func synthesizeItems(lines []string) []domain.LineItem {
	var items []domain.LineItem
	for idx, line := range lines {
		if idx == 0 || !bareNumberPattern.MatchString(line) {
			continue
		}
		quantity, ok := ocr.ParseAmount(line)
		if !ok || quantity <= 0 {
			continue
		}

		var amount float64
		if idx+1 < len(lines) {
			if token := numericPattern.FindString(lines[idx+1]); token != "" {
				amount, _ = ocr.ParseAmount(token)
			}
		}

		name := lines[idx-1]
		if name == "" || amount <= 0 {
			continue
		}

		items = append(items, domain.LineItem{
			ItemName:  name,
			Quantity:  quantity,
			UnitPrice: math.Floor(amount / quantity),
			Amount:    amount,
			TaxRate:   10,
			TaxAmount: math.Floor(amount * 0.1),
		})
	}
	return items
}
