package rules

import (
	"regexp"

	"github.com/username/metricsanalyzer/src/models"
)

// NoParentSentinel is the placeholder Hotmart writes into the parent
// transaction column for standalone sales.
const NoParentSentinel = "(none)"

// OfferVariantOther collects offer names that match no priced tier.
// It is excluded from the tier percentage denominator.
const OfferVariantOther = "outros"

// Product defines one canonical product and the rules that map raw
// names onto it. Aliases are compared case-insensitively and with
// diacritics folded; patterns run against the raw string.
type Product struct {
	Key         string
	DisplayName string
	Aliases     []string
	Patterns    []*regexp.Regexp
}

// OriginGroup maps any of its keywords (substring match over the
// concatenated lowercased tracking fields) to one channel label.
// Groups are tested in slice order; the first hit wins.
type OriginGroup struct {
	Label    string
	Keywords []string
}

// PriceMapping resolves a Hotmart price code to a product and the
// acquisition origin baked into that checkout link.
type PriceMapping struct {
	ProductKey string
	Origin     string
}

// OfferTier defines one priced tier of the flagship product by the
// literal markers its offer names carry. Tiers are tested in slice
// order.
type OfferTier struct {
	Label   string
	Markers []string
}

// RuleSet is the read-only classification configuration one
// aggregation run operates on. Loaded once at startup; safe for
// concurrent use.
type RuleSet struct {
	Products []Product

	OriginGroups []OriginGroup

	OfferTiers []OfferTier

	PriceCodes map[string]PriceMapping

	// FlagshipKey is the product whose offer names carry pricing-tier
	// markers; variant statistics only make sense for its sales.
	FlagshipKey string

	HublaSaleStatuses   []string
	HotmartSaleStatuses []string
	RefundStatuses      []string
}

// SaleStatuses returns the qualifying sale statuses for a platform.
func (rs *RuleSet) SaleStatuses(platform models.Platform) []string {
	if platform == models.PlatformHotmart {
		return rs.HotmartSaleStatuses
	}
	return rs.HublaSaleStatuses
}

// ProductByKey looks a product definition up by canonical key.
func (rs *RuleSet) ProductByKey(key string) (Product, bool) {
	for _, p := range rs.Products {
		if p.Key == key {
			return p, true
		}
	}
	return Product{}, false
}

// Default builds the production rule set. The tables mirror the
// operator-maintained mappings for the Hubla (Perettas) and Hotmart
// (Grava Simples) projects.
func Default() *RuleSet {
	return &RuleSet{
		Products: []Product{
			{
				Key:         "ldr",
				DisplayName: "Laboratório de Roteiros",
				Aliases:     []string{"Laboratório de Roteiros", "Laboratorio de Roteiros", "LDR"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)laborat[oó]rio\s+de\s+roteiros`)},
			},
			{
				Key:         "rnp",
				DisplayName: "Roteiros na Prática",
				Aliases:     []string{"Roteiros na Prática", "Roteiros na Pratica", "RNP"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)roteiros\s+na\s+pr[aá]tica`)},
			},
			{
				Key:         "viralzometro",
				DisplayName: "Viralzômetro",
				Aliases:     []string{"Viralzômetro", "Viralzometro"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)viralz[oô]metro`)},
			},
			{
				Key:         "ganchos-virais",
				DisplayName: "Ganchos Virais",
				Aliases:     []string{"Ganchos Virais", "Pacote de Ganchos Virais"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)ganchos\s+virais`)},
			},
			{
				Key:         "descomplica",
				DisplayName: "Descomplica",
				Aliases:     []string{"Descomplica", "Descomplica a Gravação"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)descomplica`)},
			},
			{
				Key:         "checklist",
				DisplayName: "Checklist",
				Aliases:     []string{"Checklist", "Checklist Completo para Gravação Profissional"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)checklist`)},
			},
			{
				Key:         "iluminacao",
				DisplayName: "Iluminação profissional",
				Aliases:     []string{"Iluminação profissional", "Transforme suas aulas com iluminação profissional"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)ilumina[cç][aã]o`)},
			},
			{
				Key:         "monitoria-grava-simples",
				DisplayName: "Monitoria/Grava Simples",
				Aliases:     []string{"Monitoria/Grava Simples", "Monitoria Grava Simples"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)monitoria`)},
			},
			{
				Key:         "grava-simples-consultoria",
				DisplayName: "Grava Simples/Consultoria",
				Aliases:     []string{"Grava Simples/Consultoria", "Consultoria Grava Simples"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)consultoria`)},
			},
			{
				Key:         "executa-infoprodutor",
				DisplayName: "Executa Infoprodutor",
				Aliases:     []string{"Executa Infoprodutor"},
				Patterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)executa\s+infoprodutor`)},
			},
			{
				Key:         "youtube",
				DisplayName: "Youtube",
				Aliases:     []string{"Youtube"},
			},
		},

		// Order matters: specific paid-traffic keywords come before the
		// generic ads group so "meta-ads" never lands in "Tráfego".
		OriginGroups: []OriginGroup{
			{Label: "Meta Ads", Keywords: []string{"meta-ads", "meta ads", "metaads", "facebook"}},
			{Label: "Whatsapp", Keywords: []string{"whatsapp", "wpp", "zap"}},
			{Label: "Instagram", Keywords: []string{"instagram", "insta"}},
			{Label: "Youtube", Keywords: []string{"youtube"}},
			{Label: "Notion", Keywords: []string{"notion"}},
			{Label: "Active | Recuperação", Keywords: []string{"active"}},
			{Label: "Hubla | Área de membros", Keywords: []string{"hubla", "area de membros", "área de membros"}},
			{Label: "Email", Keywords: []string{"email", "e-mail", "newsletter"}},
			{Label: "Tráfego", Keywords: []string{"ads", "trafego", "tráfego"}},
		},

		OfferTiers: []OfferTier{
			{Label: "297", Markers: []string{"[r$297]", "[r$ 297]", "renovação ldr", "renovacao ldr"}},
			{Label: "197", Markers: []string{"[r$197]", "[r$ 197]"}},
		},

		PriceCodes: map[string]PriceMapping{
			"997e3yhk": {ProductKey: "descomplica", Origin: "Ads - Page"},
			"gyy2gzop": {ProductKey: "descomplica", Origin: "N/A"},
			"2pzpv0td": {ProductKey: "descomplica", Origin: "Whatsapp Upsell"},
			"1yflbmft": {ProductKey: "descomplica", Origin: "Ads - Page com VSL"},
			"j5jzrlt1": {ProductKey: "checklist", Origin: "N/A"},
			"4oeu5x7p": {ProductKey: "checklist", Origin: "Bump Descomplica"},
			"xtg98r9p": {ProductKey: "checklist", Origin: "Bump Descomplica"},
			"oi58y3o3": {ProductKey: "checklist", Origin: "Ads"},
			"59um3csu": {ProductKey: "checklist", Origin: "Ads"},
			"7vtjjnnt": {ProductKey: "checklist", Origin: "Ads"},
			"024nuedz": {ProductKey: "checklist", Origin: "Ads"},
			"icm6fa9c": {ProductKey: "iluminacao", Origin: "N/A"},
			"jf0ztef5": {ProductKey: "iluminacao", Origin: "Bump Descomplica"},
			"460lfl63": {ProductKey: "iluminacao", Origin: "Bump Descomplica"},
			"v046zzii": {ProductKey: "iluminacao", Origin: "Ads"},
			"bzpif1xj": {ProductKey: "iluminacao", Origin: "Ads"},
			"p0d170xv": {ProductKey: "iluminacao", Origin: "Ads"},
			"touesadl": {ProductKey: "monitoria-grava-simples", Origin: "N/A"},
			"38erp7wk": {ProductKey: "grava-simples-consultoria", Origin: "Renata"},
			"bb391y5l": {ProductKey: "monitoria-grava-simples", Origin: "N/A"},
			"hgrsrrgr": {ProductKey: "monitoria-grava-simples", Origin: "Whatsapp Upsell"},
			"3wddccov": {ProductKey: "monitoria-grava-simples", Origin: "Whatsapp Upsell"},
			"tx535ol2": {ProductKey: "monitoria-grava-simples", Origin: "Upgrade Descomplica"},
			"jjsggcwy": {ProductKey: "monitoria-grava-simples", Origin: "N/A"},
			"h9i0lur1": {ProductKey: "grava-simples-consultoria", Origin: "Upgrade Descomplica"},
			"miqsmmjn": {ProductKey: "grava-simples-consultoria", Origin: "Área de membros"},
			"3uh0jwrz": {ProductKey: "grava-simples-consultoria", Origin: "Área de membros"},
			"vxwamur3": {ProductKey: "grava-simples-consultoria", Origin: "N/A"},
			"w9allmjk": {ProductKey: "grava-simples-consultoria", Origin: "N/A"},
			"775p3wjv": {ProductKey: "monitoria-grava-simples", Origin: "N/A"},
			"ce8nr3lp": {ProductKey: "executa-infoprodutor", Origin: "Campanha"},
			"wawx8lne": {ProductKey: "youtube", Origin: "N/A"},
		},

		FlagshipKey: "ldr",

		HublaSaleStatuses:   []string{"Paga"},
		HotmartSaleStatuses: []string{"Aprovado", "Completo"},
		RefundStatuses:      []string{"Reembolsada", "Reembolsado", "Cancelada", "Cancelado", "Chargeback"},
	}
}
