package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/rules"
)

func newResolver() *BumpResolver {
	return NewBumpResolver(NewProductClassifier(rules.Default()))
}

func TestResolveExplicitMultipleBumps(t *testing.T) {
	r := newResolver()
	parent := models.ProductIdentity{Key: "ldr", Confidence: models.ConfidenceExact}
	row := models.SaleRow{
		BumpProductNames: "Viralzômetro, Pacote de Ganchos Virais, Produto Desconhecido",
	}

	links, unmapped := r.ResolveExplicit(row, parent)

	require.Len(t, links, 2)
	assert.Equal(t, BumpLink{ParentKey: "ldr", BumpKey: "viralzometro"}, links[0])
	assert.Equal(t, BumpLink{ParentKey: "ldr", BumpKey: "ganchos-virais"}, links[1])

	// Unknown names feed the unmapped report instead of a relation.
	assert.Equal(t, []string{"Produto Desconhecido"}, unmapped)
}

func TestResolveExplicitEmptyField(t *testing.T) {
	r := newResolver()
	parent := models.ProductIdentity{Key: "ldr"}

	links, unmapped := r.ResolveExplicit(models.SaleRow{}, parent)
	assert.Nil(t, links)
	assert.Nil(t, unmapped)
}

func TestResolveExplicitUnknownParent(t *testing.T) {
	r := newResolver()
	parent := models.ProductIdentity{Key: models.UnknownProductKey}
	row := models.SaleRow{BumpProductNames: "Viralzômetro"}

	links, unmapped := r.ResolveExplicit(row, parent)
	assert.Nil(t, links)
	assert.Nil(t, unmapped)
}

func TestResolveCrossRefs(t *testing.T) {
	r := newResolver()
	rows := []models.SaleRow{
		{TransactionRef: "HP1", ParentTransactionRef: rules.NoParentSentinel, PriceCode: "997e3yhk"},
		{TransactionRef: "HP2", ParentTransactionRef: "HP1", PriceCode: "4oeu5x7p"},
		{TransactionRef: "HP3", ParentTransactionRef: "HP999", PriceCode: "jf0ztef5"},
	}

	outcome := r.ResolveCrossRefs(rows)

	require.Len(t, outcome.Direct, 1)
	assert.Equal(t, "HP1", outcome.Direct[0].TransactionRef)

	require.Len(t, outcome.Links, 1)
	assert.Equal(t, BumpLink{ParentKey: "descomplica", BumpKey: "checklist"}, outcome.Links[0])

	// HP3 points at a transaction absent from the report.
	assert.Equal(t, 1, outcome.Unresolved)
}

func TestResolveCrossRefsEmptyParentIsDirect(t *testing.T) {
	r := newResolver()
	rows := []models.SaleRow{
		{TransactionRef: "HP1", ParentTransactionRef: "", PriceCode: "997e3yhk"},
	}

	outcome := r.ResolveCrossRefs(rows)
	assert.Len(t, outcome.Direct, 1)
	assert.Empty(t, outcome.Links)
}

func TestResolveCrossRefsUnknownProductsStayUnresolved(t *testing.T) {
	r := newResolver()
	rows := []models.SaleRow{
		{TransactionRef: "HP1", ParentTransactionRef: rules.NoParentSentinel, PriceCode: "zzzz9999", ProductName: "Produto Misterioso"},
		{TransactionRef: "HP2", ParentTransactionRef: "HP1", PriceCode: "4oeu5x7p"},
	}

	outcome := r.ResolveCrossRefs(rows)

	// The parent resolves to no known product, so the relation is
	// dropped into the unresolved count rather than invented.
	assert.Empty(t, outcome.Links)
	assert.Equal(t, 1, outcome.Unresolved)
}

func TestResolveCrossRefsFallsBackToNameClassification(t *testing.T) {
	r := newResolver()
	rows := []models.SaleRow{
		{TransactionRef: "HP1", ParentTransactionRef: rules.NoParentSentinel, PriceCode: "zzzz9999", ProductName: "Descomplica"},
		{TransactionRef: "HP2", ParentTransactionRef: "HP1", PriceCode: "4oeu5x7p"},
	}

	outcome := r.ResolveCrossRefs(rows)

	require.Len(t, outcome.Links, 1)
	assert.Equal(t, BumpLink{ParentKey: "descomplica", BumpKey: "checklist"}, outcome.Links[0])
}
