package interpreter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"choubo/internal/domain"
	"choubo/internal/interpreter"
	"choubo/internal/llm"
	"choubo/internal/port"
	"choubo/mocks"
)

const defaultVendor = "合同会社アソウタイセイプリンティング"

func docFromLines(lines ...string) *domain.RawDocument {
	page := domain.RawPage{PageNumber: 1}
	for _, l := range lines {
		page.Lines = append(page.Lines, domain.RawLine{Content: l})
	}
	return &domain.RawDocument{Pages: []domain.RawPage{page}}
}

func completionWith(content string) *port.CompletionResult {
	return &port.CompletionResult{Content: content, Provider: "remote", Model: "deepseek-chat"}
}

func quoteLines() []string {
	return []string{
		"見積書",
		"合同会社アソウタイセイプリンティング",
		"株式会社CROP御中",
		"領収書（3枚複写・1冊50組）",
		"1",
		"5,000",
		"5,000",
		"小計",
		"5,000",
		"消費税(10%)",
		"500",
		"合計",
		"5,500",
	}
}

func TestInterpret_SupplierQuoteScenario(t *testing.T) {
	gw := new(mocks.MockCompletionGateway)
	gw.On("Complete", mock.Anything, mock.Anything).Return(completionWith("```json\n"+
		`{"documentNumber":"Q-001","issueDate":"2025-03-15","subject":"印刷物",`+
		`"vendor":{"name":"合同会社アソウタイセイプリンティング"},`+
		`"customer":{"name":"株式会社CROP御中"},`+
		`"items":[{"itemName":"領収書（3枚複写・1冊50組）","quantity":1,"unitPrice":5000,"amount":5000}],`+
		`"subtotal":5000,"taxAmount":500,"totalAmount":5500}`+
		"\n```"), nil)

	it := interpreter.New(gw, defaultVendor)
	result, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines(quoteLines()...),
		DocumentType: domain.DocumentTypeSupplierQuote,
		CompanyID:    "company-1",
	})

	require.NoError(t, err)
	doc := result.Document
	assert.Contains(t, doc.Vendor.Name, "アソウタイセイプリンティング")
	assert.Contains(t, doc.Customer.Name, "CROP")
	assert.Equal(t, float64(5500), doc.TotalAmount)
	assert.GreaterOrEqual(t, len(doc.Items), 1)
	assert.Equal(t, domain.ConfidenceLLM, doc.Confidence)
	assert.Equal(t, "deepseek-chat", result.ModelUsed)
}

func TestInterpret_LabeledTotalOverridesSummedTotal(t *testing.T) {
	gw := new(mocks.MockCompletionGateway)
	// The model added tax on top of the tax-inclusive 合計.
	gw.On("Complete", mock.Anything, mock.Anything).Return(completionWith("```json\n"+
		`{"vendor":{"name":"ピアソラ"},"customer":{"name":""},`+
		`"items":[{"itemName":"商品A","quantity":1,"unitPrice":7272,"amount":7272}],`+
		`"subtotal":7272,"taxAmount":727,"totalAmount":8726}`+
		"\n```"), nil)

	it := interpreter.New(gw, defaultVendor)
	result, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines("ピアソラ", "小計", "7,272", "10%外税額", "727", "合計", "7,999"),
		DocumentType: domain.DocumentTypeReceipt,
	})

	require.NoError(t, err)
	assert.Equal(t, float64(7272), result.Document.Subtotal)
	assert.Equal(t, float64(727), result.Document.TaxAmount)
	assert.Equal(t, float64(7999), result.Document.TotalAmount)
}

func TestInterpret_RemarkRowsMovedToNotes(t *testing.T) {
	gw := new(mocks.MockCompletionGateway)
	gw.On("Complete", mock.Anything, mock.Anything).Return(completionWith("```json\n"+
		`{"vendor":{"name":"ピアソラ"},"customer":{"name":""},`+
		`"items":[{"itemName":"商品A","quantity":2,"unitPrice":500,"amount":1000},`+
		`{"itemName":"CROP様分","quantity":0,"unitPrice":0,"amount":0}],`+
		`"subtotal":1000,"taxAmount":100,"totalAmount":1100}`+
		"\n```"), nil)

	it := interpreter.New(gw, defaultVendor)
	result, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines("ピアソラ"),
		DocumentType: domain.DocumentTypeInvoice,
	})

	require.NoError(t, err)
	doc := result.Document
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "商品A", doc.Items[0].ItemName)
	assert.Contains(t, doc.Notes, "CROP様分")
	for _, item := range doc.Items {
		assert.True(t, item.HasNumericData())
	}
}

func TestInterpret_AllRowsRemarks_PlaceholderSynthesized(t *testing.T) {
	gw := new(mocks.MockCompletionGateway)
	gw.On("Complete", mock.Anything, mock.Anything).Return(completionWith("```json\n"+
		`{"vendor":{"name":"ピアソラ"},"customer":{"name":""},`+
		`"items":[{"itemName":"仕様メモ","quantity":0,"unitPrice":0,"amount":0}],`+
		`"subtotal":0,"taxAmount":0,"totalAmount":2200}`+
		"\n```"), nil)

	it := interpreter.New(gw, defaultVendor)
	result, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines("ピアソラ"),
		DocumentType: domain.DocumentTypeReceipt,
	})

	require.NoError(t, err)
	doc := result.Document
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "商品", doc.Items[0].ItemName)
	assert.Equal(t, float64(2200), doc.Items[0].Amount)
	assert.Contains(t, doc.Notes, "仕様メモ")
}

func TestInterpret_VendorBackfillFromOCRThenDefault(t *testing.T) {
	gw := new(mocks.MockCompletionGateway)
	gw.On("Complete", mock.Anything, mock.Anything).Return(completionWith("```json\n"+
		`{"vendor":{"name":"不明"},"customer":{"name":""},"items":[],`+
		`"subtotal":0,"taxAmount":0,"totalAmount":0}`+
		"\n```"), nil)

	it := interpreter.New(gw, defaultVendor)

	result, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines("株式会社サンプル印刷"),
		DocumentType: domain.DocumentTypeInvoice,
	})
	require.NoError(t, err)
	assert.Equal(t, "株式会社サンプル印刷", result.Document.Vendor.Name)

	result, err = it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines("会社名のない紙片"),
		DocumentType: domain.DocumentTypeInvoice,
	})
	require.NoError(t, err)
	assert.Equal(t, defaultVendor, result.Document.Vendor.Name)
}

func TestInterpret_NoJSONFallsBack(t *testing.T) {
	gw := new(mocks.MockCompletionGateway)
	gw.On("Complete", mock.Anything, mock.Anything).Return(completionWith("すみません、読み取れませんでした。"), nil)

	it := interpreter.New(gw, defaultVendor)
	result, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines(quoteLines()...),
		DocumentType: domain.DocumentTypeSupplierQuote,
	})

	require.NoError(t, err)
	doc := result.Document
	assert.Equal(t, domain.ConfidenceHeuristicFallback, doc.Confidence)
	require.NotEmpty(t, doc.Items)
	for _, item := range doc.Items {
		assert.True(t, item.HasNumericData())
	}
}

func TestInterpret_GatewayErrorFallsBack(t *testing.T) {
	gw := new(mocks.MockCompletionGateway)
	gw.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("all providers failed"))

	it := interpreter.New(gw, defaultVendor)
	result, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines(quoteLines()...),
		DocumentType: domain.DocumentTypeSupplierQuote,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ConfidenceHeuristicFallback, result.Document.Confidence)
	assert.Equal(t, float64(5500), result.Document.TotalAmount)
}

func TestInterpret_NoProviderIsFatal(t *testing.T) {
	gw := new(mocks.MockCompletionGateway)
	gw.On("Complete", mock.Anything, mock.Anything).Return(nil, llm.ErrNoProvider)

	it := interpreter.New(gw, defaultVendor)
	_, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines("見積書"),
		DocumentType: domain.DocumentTypeInvoice,
	})

	assert.ErrorIs(t, err, llm.ErrNoProvider)
}

func TestInterpret_InvalidDocumentType(t *testing.T) {
	it := interpreter.New(new(mocks.MockCompletionGateway), defaultVendor)
	_, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines("見積書"),
		DocumentType: domain.DocumentType("contract"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}

func TestInterpret_ParkingDetection(t *testing.T) {
	gw := new(mocks.MockCompletionGateway)
	gw.On("Complete", mock.Anything, mock.Anything).Return(completionWith("```json\n"+
		`{"vendor":{"name":"タイムズ24株式会社"},"customer":{"name":""},`+
		`"items":[{"itemName":"駐車料金","quantity":1,"unitPrice":800,"amount":800}],`+
		`"subtotal":728,"taxAmount":72,"totalAmount":800,`+
		`"notes":"入庫 10:05 出庫 12:30 駐車時間 2時間25分"}`+
		"\n```"), nil)

	it := interpreter.New(gw, defaultVendor)
	result, err := it.Interpret(context.Background(), interpreter.Request{
		Raw:          docFromLines("タイムズ24株式会社", "入庫 10:05", "出庫 12:30", "領収金額 800円"),
		DocumentType: domain.DocumentTypeReceipt,
	})

	require.NoError(t, err)
	doc := result.Document
	assert.Equal(t, domain.ReceiptTypeParking, doc.ReceiptType)
	assert.NotEmpty(t, doc.CompanyName)
	assert.Equal(t, "10:05", doc.EntryTime)
	assert.Equal(t, "12:30", doc.ExitTime)
	assert.Equal(t, "2時間25分", doc.ParkingDuration)
}
