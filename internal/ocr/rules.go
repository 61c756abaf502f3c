package ocr

import "regexp"

// companyPatterns match lines naming a company: legal-form suffixes plus
// an allow-list of non-standard names that appear without one. A match is
// only treated as a company name when the line carries no 御中 honorific.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`株式会社`),
	regexp.MustCompile(`有限会社`),
	regexp.MustCompile(`合同会社`),
	regexp.MustCompile(`一般社団法人`),
	regexp.MustCompile(`Corporation`),
	regexp.MustCompile(`Corp`),
	regexp.MustCompile(`LLC`),
	regexp.MustCompile(`Inc`),
	regexp.MustCompile(`\(株\)`),
	regexp.MustCompile(`\(有\)`),
	regexp.MustCompile(`アソウタイセイ`),
	regexp.MustCompile(`ピアソラ`),
}

// honorifics mark a line as naming the document's addressee.
var honorifics = []string{"御中", "様"}

var (
	amountPattern = regexp.MustCompile(`[\d,]+円?`)
	numberPattern = regexp.MustCompile(`[\d,]+`)
	datePattern   = regexp.MustCompile(`\d{4}[年/\-]\d{1,2}[月/\-]\d{1,2}`)
)

// AmountField identifies which monetary field a labeled amount belongs to.
type AmountField int

const (
	AmountSubtotal AmountField = iota
	AmountTax
	AmountTotal
)

// AmountKeywordRule binds a label keyword pattern to a monetary field.
type AmountKeywordRule struct {
	Pattern *regexp.Regexp
	Field   AmountField
}

// amountKeywordRules are tried in order against each line; the first
// matching rule wins. More specific labels come first so that 税抜合計
// resolves as a subtotal and 税TAX計 as tax before the generic 合計 and
// TAX labels. A labeled 合計 is the final payable amount and is used
// verbatim; tax is never added to it again.
var amountKeywordRules = []AmountKeywordRule{
	{regexp.MustCompile(`税抜合計|税抜金額|小計額|小計|本体価格`), AmountSubtotal},
	{regexp.MustCompile(`\d+%外税額?|外税額|外税|消費税額|消費税|税TAX計|内税額|内税|TAX|税額`), AmountTax},
	{regexp.MustCompile(`税込合計|総合計|合計額|合計|お支払金額|お支払い|ご請求額|領収金額`), AmountTotal},
}

// parkingKeywords identify parking receipts: operator names plus the
// entry/exit vocabulary printed on gate tickets.
var parkingKeywords = []string{
	"タイムズ",
	"リパーク",
	"パーキング",
	"駐車場",
	"入庫",
	"出庫",
}

var (
	entryTimePattern = regexp.MustCompile(`入庫[^\d]*(\d{1,2}:\d{2})`)
	exitTimePattern  = regexp.MustCompile(`出庫[^\d]*(\d{1,2}:\d{2})`)
	durationPattern  = regexp.MustCompile(`駐車時間[^\d]*(\d+時間\d*分?|\d+分)`)
)
