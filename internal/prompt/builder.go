package prompt

import "choubo/internal/domain"

// SystemMessage is the system-role content sent with every text
// completion request.
const SystemMessage = "You are a JSON extraction expert. Always return valid JSON in code blocks."

// VisionSystemMessage instructs the local vision model when a scanned
// image is analyzed directly, bypassing the OCR text path.
const VisionSystemMessage = `あなたは日本のビジネス文書処理に精通したOCRエキスパートです。請求書・見積書・領収書の画像を分析し、JSON形式で正確にデータを抽出してください。

# 金額処理ルール
- 円マーク（¥、￥）と桁区切りカンマを除去
- 全角数字を半角に変換
- 結果は必ず数値型

# 金額ラベルの対応
- 小計・小計額・税抜金額・税抜合計・本体価格 → subtotal
- 合計・合計額・税込合計・総合計・お支払い・お支払金額・ご請求額・領収金額 → totalAmount（記載値をそのまま使用。税額を加算しない）
- 外税・外税額・N%外税(額)・消費税・消費税額・税額・TAX・税TAX計・内税・内税額 → taxAmount

# 日付処理ルール
- 和暦は西暦に変換し、区切りはハイフンに統一（YYYY-MM-DD）

# 禁止事項
- 画像に存在しない情報の捏造
- JSON形式以外での出力

読み取れない項目は空文字または0を設定してください。`

// VisionUserMessage returns the user-role content for the vision path.
func VisionUserMessage(documentType domain.DocumentType) string {
	return "この" + documentType.JapaneseLabel() + "を読み取って、コードブロック内のJSONで出力してください。"
}

// amountLabelRules is embedded verbatim in every text prompt. The
// mapping mirrors the validator's keyword table so the model and the
// heuristics agree on which printed label feeds which field.
const amountLabelRules = `AMOUNT LABEL MAPPING (use the printed value exactly as labeled):
- 小計 / 小計額 / 税抜金額 / 税抜合計 / 本体価格 → subtotal
- 合計 / 合計額 / 税込合計 / 総合計 / お支払い / お支払金額 / ご請求額 / 領収金額 → totalAmount
- 外税 / 外税額 / N%外税(額) / 消費税 / 消費税額 / 税額 / TAX / 税TAX計 / 内税 / 内税額 → taxAmount
CRITICAL: when a labeled 合計 value exists, totalAmount MUST be that value verbatim. NEVER compute totalAmount as subtotal + taxAmount.`

// Build returns the extraction prompt for the given document type with
// the compacted OCR payload embedded. Parking receipts use a dedicated
// schema oriented around entry/exit times and fees.
func Build(documentType domain.DocumentType, ocrData string) string {
	if documentType == domain.DocumentTypeParkingReceipt {
		return buildParkingPrompt(ocrData)
	}
	return buildGeneralPrompt(documentType, ocrData)
}

func buildGeneralPrompt(documentType domain.DocumentType, ocrData string) string {
	return `Extract structured data from Japanese ` + documentType.JapaneseLabel() + ` OCR.

CRITICAL RULES:
1. 「御中」「様」 = customer (the recipient)
2. No honorific = vendor (the issuer)
3. Recognize company names like 合同会社アソウタイセイプリンティング, アソウタイセイプリンティング, アソウタイセイ, ピアソラ
4. IMPORTANT: Rows in product table with text in name column but EMPTY quantity, unit price, AND amount are NOT products - these are remarks/notes
5. Only treat rows as products if they have at least ONE of: quantity, unit price, or amount
6. Extract content from 備考 columns as notes
7. For invoices (請求書), extract balance/carryover information:
   - 前回請求額 = previousBalance
   - 今回入金額 = currentPayment
   - 繰越金額 = carryoverAmount
   - 今回売上高 = currentSales
   - 今回請求額 = currentInvoiceAmount
8. Extract bank transfer information (振込先):
   - 銀行名 = bankName
   - 支店名 = branchName
   - 口座種別 (普通/当座) = accountType
   - 口座番号 (typically 7 digits) = accountNumber
   - 口座名義 = accountName
   - Additional transfer info = additionalInfo

` + amountLabelRules + `

Example:
- "CROP様分" with no quantity/price/amount → This is a REMARK, not a product
- "領収書（3枚複写・1冊50組）" with quantity=200, price=570, amount=114,000 → This is a PRODUCT
- Long specification text with no quantity/price/amount → This is a REMARK, not a product

OCR data:
` + ocrData + `

Return ONLY JSON:
` + "```json" + `
{
  "documentNumber": "string",
  "issueDate": "YYYY-MM-DD",
  "subject": "string",
  "vendor": {
    "name": "vendor name (no 御中)",
    "address": "string",
    "phone": "string",
    "email": "string",
    "fax": "string"
  },
  "customer": {
    "name": "customer name (with 御中)",
    "address": "string"
  },
  "items": [{
    "itemName": "string",
    "description": "string",
    "quantity": 1,
    "unitPrice": 5000,
    "amount": 5000,
    "remarks": "string"
  }],
  "previousBalance": 25260,
  "currentPayment": 2250,
  "carryoverAmount": 23010,
  "currentSales": 107863,
  "currentInvoiceAmount": 130873,
  "subtotal": 5000,
  "taxAmount": 500,
  "totalAmount": 5500,
  "notes": "string (combined remarks/notes from non-product rows and 備考 column)",
  "deliveryLocation": "string",
  "paymentTerms": "string",
  "bankTransferInfo": {
    "bankName": "銀行名",
    "branchName": "支店名",
    "accountType": "普通",
    "accountNumber": "1234567",
    "accountName": "口座名義",
    "additionalInfo": "振込手数料はお客様負担"
  }
}
` + "```"
}

func buildParkingPrompt(ocrData string) string {
	return `Extract structured data from Japanese 駐車場領収書 (parking receipt) OCR.

CRITICAL RULES:
1. The operator name (タイムズ, リパークなど) = companyName; the lot name = facilityName
2. 入庫 time = entryTime, 出庫 time = exitTime, 駐車時間 = parkingDuration (keep HH:MM format)
3. 駐車料金/基本料金 = baseFee, 追加料金 = additionalFee
4. The printed 領収金額/合計 = totalAmount, used exactly as labeled

` + amountLabelRules + `

OCR data:
` + ocrData + `

Return ONLY JSON:
` + "```json" + `
{
  "documentNumber": "string",
  "issueDate": "YYYY-MM-DD",
  "subject": "駐車料金",
  "vendor": {
    "name": "operator name"
  },
  "customer": {
    "name": "string"
  },
  "items": [{
    "itemName": "駐車料金",
    "quantity": 1,
    "unitPrice": 800,
    "amount": 800
  }],
  "subtotal": 728,
  "taxAmount": 72,
  "totalAmount": 800,
  "receiptType": "parking",
  "companyName": "タイムズ24株式会社",
  "facilityName": "string",
  "entryTime": "10:05",
  "exitTime": "12:30",
  "parkingDuration": "2時間25分",
  "baseFee": 800,
  "additionalFee": 0,
  "notes": "string"
}
` + "```"
}
