package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/rules"
)

func TestClassifyExactAlias(t *testing.T) {
	c := NewProductClassifier(rules.Default())

	tests := []struct {
		name    string
		input   string
		wantKey string
	}{
		{"canonical name", "Laboratório de Roteiros", "ldr"},
		{"accentless alias", "Laboratorio de Roteiros", "ldr"},
		{"short alias uppercased", "LDR", "ldr"},
		{"accent and case insensitive", "VIRALZÔMETRO", "viralzometro"},
		{"surrounding whitespace", "  Checklist  ", "checklist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := c.Classify(tt.input)
			assert.Equal(t, tt.wantKey, id.Key)
			assert.Equal(t, models.ConfidenceExact, id.Confidence)
		})
	}
}

func TestClassifyPattern(t *testing.T) {
	c := NewProductClassifier(rules.Default())

	// Not an exact alias, but the flagship pattern matches inside the
	// longer campaign name.
	id := c.Classify("Curso Laboratório de Roteiros - Turma 8")
	assert.Equal(t, "ldr", id.Key)
	assert.Equal(t, models.ConfidencePattern, id.Confidence)
}

func TestClassifyPartial(t *testing.T) {
	c := NewProductClassifier(rules.Default())

	// "Viralz" is neither an alias nor a pattern hit, but it is a
	// substring of the folded alias "viralzometro".
	id := c.Classify("Viralz")
	assert.Equal(t, "viralzometro", id.Key)
	assert.Equal(t, models.ConfidencePartial, id.Confidence)
}

func TestClassifyStagePrecedence(t *testing.T) {
	// A name that could partially match several products must resolve
	// through the earlier exact stage, never fall through to partial.
	c := NewProductClassifier(rules.Default())
	id := c.Classify("Ganchos Virais")
	assert.Equal(t, "ganchos-virais", id.Key)
	assert.Equal(t, models.ConfidenceExact, id.Confidence)
}

func TestClassifyUnknown(t *testing.T) {
	c := NewProductClassifier(rules.Default())

	id := c.Classify("Produto Misterioso XYZ")
	assert.Equal(t, models.UnknownProductKey, id.Key)
	assert.Equal(t, models.ConfidenceNone, id.Confidence)
	// The raw name survives as display name for the unmapped report.
	assert.Equal(t, "Produto Misterioso XYZ", id.DisplayName)
}

func TestClassifyEmptyName(t *testing.T) {
	c := NewProductClassifier(rules.Default())
	id := c.Classify("   ")
	assert.Equal(t, models.UnknownProductKey, id.Key)
	assert.Equal(t, models.ConfidenceNone, id.Confidence)
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewProductClassifier(rules.Default())
	first := c.Classify("Descomplica a Gravação")
	second := c.Classify("Descomplica a Gravação")
	assert.Equal(t, first, second)
}

func TestLookupPriceCode(t *testing.T) {
	c := NewProductClassifier(rules.Default())

	mapping, ok := c.LookupPriceCode("997e3yhk")
	require.True(t, ok)
	assert.Equal(t, "descomplica", mapping.ProductKey)
	assert.Equal(t, "Ads - Page", mapping.Origin)

	// Codes are normalized before lookup.
	mapping, ok = c.LookupPriceCode("  997E3YHK ")
	require.True(t, ok)
	assert.Equal(t, "descomplica", mapping.ProductKey)
}

func TestLookupPriceCodeMiss(t *testing.T) {
	c := NewProductClassifier(rules.Default())
	_, ok := c.LookupPriceCode("zzzz9999")
	assert.False(t, ok)
}
