package interpreter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choubo/internal/domain"
	"choubo/internal/interpreter"
	"choubo/mocks"
)

func TestSynthesize_PositionalItems(t *testing.T) {
	it := interpreter.New(new(mocks.MockCompletionGateway), defaultVendor)

	doc := it.Synthesize(interpreter.Request{
		Raw: docFromLines(
			"合同会社アソウタイセイプリンティング",
			"株式会社CROP御中",
			"件名: 名刺印刷",
			"名刺（両面カラー）",
			"2",
			"3,000",
		),
		DocumentType: domain.DocumentTypeSupplierQuote,
	})

	assert.Equal(t, "名刺印刷", doc.Subject)
	require.Len(t, doc.Items, 1)
	item := doc.Items[0]
	assert.Equal(t, "名刺（両面カラー）", item.ItemName)
	assert.Equal(t, float64(2), item.Quantity)
	assert.Equal(t, float64(3000), item.Amount)
	// Unit price back-computed by integer division.
	assert.Equal(t, float64(1500), item.UnitPrice)
	assert.Equal(t, domain.ConfidenceHeuristicFallback, doc.Confidence)
	assert.True(t, strings.HasPrefix(doc.DocumentNumber, "FALLBACK-"))
}

func TestSynthesize_EmptyDocumentStillValid(t *testing.T) {
	it := interpreter.New(new(mocks.MockCompletionGateway), defaultVendor)

	doc := it.Synthesize(interpreter.Request{
		Raw:          &domain.RawDocument{},
		DocumentType: domain.DocumentTypeReceipt,
	})

	assert.Equal(t, defaultVendor, doc.Vendor.Name)
	assert.Equal(t, "顧客名不明", doc.Customer.Name)
	assert.Equal(t, float64(5500), doc.TotalAmount)
	require.Len(t, doc.Items, 1)
	assert.True(t, doc.Items[0].HasNumericData())
	assert.NotEmpty(t, doc.Notes)
}

func TestSynthesize_ParkingReceipt(t *testing.T) {
	it := interpreter.New(new(mocks.MockCompletionGateway), defaultVendor)

	doc := it.Synthesize(interpreter.Request{
		Raw:          docFromLines("タイムズ福岡", "入庫 09:00", "出庫 11:15", "領収金額 1,100円"),
		DocumentType: domain.DocumentTypeParkingReceipt,
	})

	assert.Equal(t, domain.ReceiptTypeParking, doc.ReceiptType)
	assert.NotEmpty(t, doc.CompanyName)
	assert.Equal(t, "09:00", doc.EntryTime)
	assert.Equal(t, "11:15", doc.ExitTime)
}
