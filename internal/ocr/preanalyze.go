package ocr

import (
	"strconv"
	"strings"

	"choubo/internal/domain"
)

// PreAnalysis summarizes the deterministic signals found in raw OCR text.
// It feeds prompt context and serves as the validation oracle when the
// model output is missing fields.
type PreAnalysis struct {
	HasFields       bool     `json:"hasFields"`
	HasTables       bool     `json:"hasTables"`
	HasPages        bool     `json:"hasPages"`
	CompaniesFound  []string `json:"companiesFound"`
	HonorificsFound []string `json:"honorificsFound"`
	AmountsFound    []string `json:"amountsFound"`
	DatesFound      []string `json:"datesFound"`
}

// Analyze scans every OCR line for company names, honorific-bearing
// addressee lines, amount tokens and date tokens. Absent matches yield
// empty slices, never an error.
func Analyze(doc *domain.RawDocument) *PreAnalysis {
	analysis := &PreAnalysis{
		HasFields:       len(doc.Fields) > 0,
		HasTables:       len(doc.Tables) > 0,
		HasPages:        len(doc.Pages) > 0,
		CompaniesFound:  []string{},
		HonorificsFound: []string{},
		AmountsFound:    []string{},
		DatesFound:      []string{},
	}

	for _, content := range doc.LineContents() {
		if IsCompanyName(content) {
			analysis.CompaniesFound = append(analysis.CompaniesFound, content)
		}
		if HasHonorific(content) {
			analysis.HonorificsFound = append(analysis.HonorificsFound, content)
		}
		analysis.AmountsFound = append(analysis.AmountsFound, amountPattern.FindAllString(content, -1)...)
		if date := datePattern.FindString(content); date != "" {
			analysis.DatesFound = append(analysis.DatesFound, date)
		}
	}

	return analysis
}

// IsCompanyName reports whether a line names a company. Lines addressed
// with 御中 name the customer, not the issuer, and are excluded.
func IsCompanyName(text string) bool {
	if strings.Contains(text, "御中") {
		return false
	}
	for _, pattern := range companyPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// HasHonorific reports whether a line carries an addressee honorific.
func HasHonorific(text string) bool {
	for _, h := range honorifics {
		if strings.Contains(text, h) {
			return true
		}
	}
	return false
}

// ExtractCompany returns the first company-name line, or "".
func ExtractCompany(doc *domain.RawDocument) string {
	for _, content := range doc.LineContents() {
		if IsCompanyName(content) {
			return strings.TrimSpace(content)
		}
	}
	return ""
}

// ExtractCustomer returns the first honorific-bearing line, or "".
func ExtractCustomer(doc *domain.RawDocument) string {
	for _, content := range doc.LineContents() {
		if HasHonorific(content) {
			return strings.TrimSpace(content)
		}
	}
	return ""
}

// ExtractTotalAmount returns the largest numeric token above 1000 found
// in the OCR text, the usual position of the payable total, or 0 when no
// plausible candidate exists.
func ExtractTotalAmount(doc *domain.RawDocument) float64 {
	var max float64
	for _, content := range doc.LineContents() {
		for _, token := range numberPattern.FindAllString(content, -1) {
			num, ok := ParseAmount(token)
			if ok && num > 1000 && num > max {
				max = num
			}
		}
	}
	return max
}

// IsParkingReceipt reports whether the OCR text matches the parking
// facility keyword set.
func IsParkingReceipt(doc *domain.RawDocument) bool {
	if containsParkingKeyword(doc.Content) {
		return true
	}
	for _, content := range doc.LineContents() {
		if containsParkingKeyword(content) {
			return true
		}
	}
	return false
}

func containsParkingKeyword(text string) bool {
	for _, kw := range parkingKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ExtractEntryTime pulls an 入庫 HH:MM token out of free text, or "".
func ExtractEntryTime(text string) string {
	if m := entryTimePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractExitTime pulls an 出庫 HH:MM token out of free text, or "".
func ExtractExitTime(text string) string {
	if m := exitTimePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractParkingDuration pulls a 駐車時間 token out of free text, or "".
func ExtractParkingDuration(text string) string {
	if m := durationPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ParseAmount converts a numeric OCR token such as "7,999" or "500円"
// to a number. The second return is false when the token has no digits.
func ParseAmount(token string) (float64, bool) {
	cleaned := strings.ReplaceAll(token, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "円")
	if cleaned == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
