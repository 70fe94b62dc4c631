package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/metricsanalyzer/src/rules"
)

func TestClassifyOfferVariant(t *testing.T) {
	rs := rules.Default()

	tests := []struct {
		name  string
		offer string
		want  string
	}{
		{"full price marker", "LDR [R$297] Turma 8", "297"},
		{"full price spaced marker", "LDR [R$ 297] Julho", "297"},
		{"renewal counts as full price", "Renovação LDR - aluno antigo", "297"},
		{"promo marker", "LDR [R$197] Black Friday", "197"},
		{"no marker", "Oferta especial de lançamento", rules.OfferVariantOther},
		{"empty offer name", "", rules.OfferVariantOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyOfferVariant(tt.offer, rs))
		})
	}
}

func TestOfferVariantStats(t *testing.T) {
	rs := rules.Default()
	counts := map[string]int{
		"297":                   30,
		"197":                   10,
		rules.OfferVariantOther: 5,
	}

	stats := OfferVariantStats(counts, rs)
	require.Len(t, stats, 3)

	// Percentages are relative to the priced tiers (40), not the grand
	// total (45).
	assert.Equal(t, 30, stats["297"].Quantity)
	assert.Equal(t, "75.00%", stats["297"].Percentage)
	assert.Equal(t, "25.00%", stats["197"].Percentage)

	assert.Equal(t, 5, stats[rules.OfferVariantOther].Quantity)
	assert.Equal(t, "N/A", stats[rules.OfferVariantOther].Percentage)
}

func TestOfferVariantStatsOnlyOther(t *testing.T) {
	rs := rules.Default()
	stats := OfferVariantStats(map[string]int{rules.OfferVariantOther: 3}, rs)
	require.Len(t, stats, 1)
	assert.Equal(t, "N/A", stats[rules.OfferVariantOther].Percentage)
}

func TestOfferVariantStatsEmpty(t *testing.T) {
	assert.Nil(t, OfferVariantStats(nil, rules.Default()))
	assert.Nil(t, OfferVariantStats(map[string]int{}, rules.Default()))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "50.00%", FormatRate(1, 2))
	assert.Equal(t, "100.00%", FormatRate(3, 3))
	assert.Equal(t, "33.33%", FormatRate(1, 3))
	assert.Equal(t, "0.00%", FormatRate(0, 10))
	assert.Equal(t, "0%", FormatRate(5, 0))
	assert.Equal(t, "0%", FormatRate(0, 0))
}
