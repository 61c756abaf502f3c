package ocr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"choubo/internal/ocr"
)

func TestFindLabeledAmounts_LabelOnOwnLine(t *testing.T) {
	amounts := ocr.FindLabeledAmounts([]string{"小計", "7,272", "10%外税額", "727", "合計", "7,999"})

	assert.True(t, amounts.SubtotalFound)
	assert.Equal(t, float64(7272), amounts.Subtotal)
	assert.True(t, amounts.TaxFound)
	assert.Equal(t, float64(727), amounts.Tax)
	assert.True(t, amounts.TotalFound)
	assert.Equal(t, float64(7999), amounts.Total)
}

func TestFindLabeledAmounts_InlineValues(t *testing.T) {
	amounts := ocr.FindLabeledAmounts([]string{"小計 5,000", "消費税(10%) 500", "合計 5,500円"})

	assert.Equal(t, float64(5000), amounts.Subtotal)
	// The 10% rate must not be mistaken for the tax amount.
	assert.Equal(t, float64(500), amounts.Tax)
	assert.Equal(t, float64(5500), amounts.Total)
}

func TestFindLabeledAmounts_TaxInclusiveTotalVariants(t *testing.T) {
	amounts := ocr.FindLabeledAmounts([]string{"税抜合計 10,000", "税込合計 11,000"})

	assert.True(t, amounts.SubtotalFound)
	assert.Equal(t, float64(10000), amounts.Subtotal)
	assert.True(t, amounts.TotalFound)
	assert.Equal(t, float64(11000), amounts.Total)
}

func TestFindLabeledAmounts_FirstOccurrenceWins(t *testing.T) {
	amounts := ocr.FindLabeledAmounts([]string{"合計 5,500", "総合計 9,999"})

	assert.Equal(t, float64(5500), amounts.Total)
}

func TestFindLabeledAmounts_NoLabels(t *testing.T) {
	amounts := ocr.FindLabeledAmounts([]string{"ご利用ありがとうございました"})

	assert.False(t, amounts.SubtotalFound)
	assert.False(t, amounts.TaxFound)
	assert.False(t, amounts.TotalFound)
}
