package ocr

import "strings"

// LabeledAmounts holds monetary values found next to their printed
// labels. A zero value with Found false means the label never appeared.
type LabeledAmounts struct {
	Subtotal      float64
	SubtotalFound bool
	Tax           float64
	TaxFound      bool
	Total         float64
	TotalFound    bool
}

// FindLabeledAmounts walks OCR lines looking for amount labels (小計,
// 消費税, 合計 and their variants per the keyword table) and binds each
// label to the number on the same line, or on the following line when the
// label stands alone. The first occurrence of each field wins. The value
// found for a 合計-family label is the final payable amount and must be
// used verbatim.
func FindLabeledAmounts(lines []string) LabeledAmounts {
	var amounts LabeledAmounts

	for i, line := range lines {
		for _, rule := range amountKeywordRules {
			loc := rule.Pattern.FindStringIndex(line)
			if loc == nil {
				continue
			}

			// Prefer a number after the label on the same line, then
			// fall back to the next line.
			value, ok := firstAmount(line[loc[1]:])
			if !ok && i+1 < len(lines) {
				value, ok = firstAmount(lines[i+1])
			}
			if !ok {
				break
			}

			switch rule.Field {
			case AmountSubtotal:
				if !amounts.SubtotalFound {
					amounts.Subtotal = value
					amounts.SubtotalFound = true
				}
			case AmountTax:
				if !amounts.TaxFound {
					amounts.Tax = value
					amounts.TaxFound = true
				}
			case AmountTotal:
				if !amounts.TotalFound {
					amounts.Total = value
					amounts.TotalFound = true
				}
			}
			break
		}
	}

	return amounts
}

// firstAmount returns the first numeric token that is an amount rather
// than a tax rate, skipping tokens immediately followed by a percent
// sign, as in 消費税(10%).
func firstAmount(text string) (float64, bool) {
	for _, loc := range numberPattern.FindAllStringIndex(text, -1) {
		if strings.HasPrefix(text[loc[1]:], "%") {
			continue
		}
		if v, ok := ParseAmount(text[loc[0]:loc[1]]); ok {
			return v, true
		}
	}
	return 0, false
}
