package sdp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sgoncalves/quadrille/model"
	"github.com/sgoncalves/quadrille/textutil"
)

// Recap anchor keywords. Each anchor selects the record field(s) populated
// from the line carrying it; lines hold two parallel values (own works vs.
// subcontracted) selected by the first and last occurrence of the "soit:"
// marker.
const (
	anchorTotal5    = "TOTAL 5"
	anchorTotal7    = "TOTAL 7"
	anchorSoit      = "soit:"
	anchorSiteCosts = "Frais de chantier"
	anchorPropCosts = "Frais proportionnels"
	anchorMarginRow = "aleas" // matched accent-folded ("Aléas-Bénéfice")
	anchorSalePrice = "PRIX DE VENTE"
	anchorRounded   = "Arrondi"
)

var (
	// amountRe matches a French-formatted monetary amount with optional
	// thousand-separating spaces and trailing currency glyph.
	amountRe = regexp.MustCompile(`[\d\s]+,\d+\s*€?`)

	// pctTailRe matches a trailing integer or decimal percentage value.
	pctTailRe = regexp.MustCompile(`(\d+(?:,\d+)?)\s*%?\s*$`)

	commaSpaceRe = regexp.MustCompile(`\s*,\s*`)
	digitGapRe   = regexp.MustCompile(`(\d)\s+(\d)`)
	euroGlueRe   = regexp.MustCompile(`(\d)€`)

	totalAPctRe   = regexp.MustCompile(`(?i)(\d+)\s*%\s*Total\s*A\s*([\d\s]+,\d+)`)
	totalAPlainRe = regexp.MustCompile(`(?i)Total\s*A\s*([\d\s]+,\d+)`)
	totalBPctRe   = regexp.MustCompile(`(?i)(\d+)\s*%\s*Total\s*B\s*([\d\s]+,\d+)`)
	totalBPlainRe = regexp.MustCompile(`(?i)Total\s*B\s*([\d\s]+,\d+)`)
)

// RecapParser extracts the trailing summary record from the text lines
// following the main table body. Extraction is anchor driven: a field is
// populated only when its anchor keyword is found, otherwise it stays
// unset.
type RecapParser struct{}

// NewRecapParser creates a recap parser.
func NewRecapParser() *RecapParser {
	return &RecapParser{}
}

// ParseTotals reads the two bare totals off the line closing the main table
// body: the first amount is the own-works total (5), the second the
// subcontracted total (7).
func (p *RecapParser) ParseTotals(text string, rec *model.RecapRecord) {
	amounts := amountRe.FindAllString(text, -1)
	if len(amounts) >= 2 {
		rec.Total5 = cleanAmount(amounts[0])
		rec.Total7 = cleanAmount(amounts[1])
	}
}

// ParseLine matches a trailer line against the known anchors and populates
// the corresponding record fields. Unrecognized lines are ignored.
func (p *RecapParser) ParseLine(text string, rec *model.RecapRecord) {
	switch {
	case strings.Contains(text, anchorTotal5):
		rec.Total5 = amountAfter(text, anchorTotal5)
		rec.Total7 = amountAfter(text, anchorTotal7)

	case strings.Contains(text, "K1") && strings.Contains(text, anchorSiteCosts):
		rec.K1Pct = pctBeforeSoit(text, true)
		rec.K1Amount = amountAfter(text, anchorSoit)
		rec.K4Pct = pctBeforeSoit(text, false)
		rec.K4Amount = amountAfterLast(text, anchorSoit)

	case strings.Contains(text, "K2") && strings.Contains(text, anchorPropCosts):
		rec.K2Pct = pctBeforeSoit(text, true)
		rec.K2Amount = amountAfter(text, anchorSoit)
		rec.K5Pct = pctBeforeSoit(text, false)
		rec.K5Amount = amountAfterLast(text, anchorSoit)

	case strings.Contains(text, "K3") && textutil.ContainsFold(text, anchorMarginRow):
		rec.K3Pct = pctBeforeSoit(text, true)
		rec.K3Amount = amountAfter(text, anchorSoit)
		rec.K6Pct = pctBeforeSoit(text, false)
		rec.K6Amount = amountAfterLast(text, anchorSoit)

	case strings.Contains(text, "Total A") || strings.Contains(text, "Total B"):
		p.parseSubtotals(text, rec)

	case strings.Contains(text, anchorSalePrice) || strings.Contains(text, anchorRounded):
		p.parseFinalPrice(text, rec)
	}
}

// parseSubtotals handles the "25% Total A 10 029,28€ 15% Total B ..." line,
// with a fallback for the percentage-less variant.
func (p *RecapParser) parseSubtotals(text string, rec *model.RecapRecord) {
	if m := totalAPctRe.FindStringSubmatch(text); m != nil {
		rec.TotalAPct = m[1] + "%"
		rec.TotalA = cleanAmount(m[2]) + " €"
	} else if m := totalAPlainRe.FindStringSubmatch(text); m != nil {
		rec.TotalA = cleanAmount(m[1]) + " €"
	}

	if m := totalBPctRe.FindStringSubmatch(text); m != nil {
		rec.TotalBPct = m[1] + "%"
		rec.TotalB = cleanAmount(m[2]) + " €"
	} else if m := totalBPlainRe.FindStringSubmatch(text); m != nil {
		rec.TotalB = cleanAmount(m[1]) + " €"
	}
}

// parseFinalPrice handles the sale price line: the first amount is the
// pre-tax sale price, the last the rounded price.
func (p *RecapParser) parseFinalPrice(text string, rec *model.RecapRecord) {
	amounts := amountRe.FindAllString(text, -1)
	if len(amounts) == 0 {
		return
	}

	rec.SalePrice = withCurrency(cleanAmount(amounts[0]))
	if len(amounts) > 1 {
		rec.RoundedPrice = withCurrency(cleanAmount(amounts[len(amounts)-1]))
	}
}

// amountAfter extracts the first amount following the first occurrence of
// marker, or "" when the marker or amount is missing.
func amountAfter(text, marker string) string {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return ""
	}
	if m := amountRe.FindString(text[idx+len(marker):]); m != "" {
		return cleanAmount(m)
	}
	return ""
}

// amountAfterLast extracts the first amount following the last occurrence
// of marker.
func amountAfterLast(text, marker string) string {
	idx := strings.LastIndex(text, marker)
	if idx < 0 {
		return ""
	}
	if m := amountRe.FindString(text[idx+len(marker):]); m != "" {
		return cleanAmount(m)
	}
	return ""
}

// pctBeforeSoit extracts the percentage immediately preceding the first or
// last "soit:" marker. Values below 1 are read as fractions and rescaled to
// whole percentages (0,10 means 10%).
func pctBeforeSoit(text string, first bool) string {
	parts := strings.Split(text, anchorSoit)
	var before string
	switch {
	case first:
		before = parts[0]
	case len(parts) > 2:
		before = parts[len(parts)-2]
	case len(parts) == 2:
		before = parts[0]
	default:
		return ""
	}

	m := pctTailRe.FindStringSubmatch(strings.TrimSpace(before))
	if m == nil {
		return ""
	}

	val := m[1]
	num, err := strconv.ParseFloat(strings.ReplaceAll(val, ",", "."), 64)
	if err != nil {
		return val + "%"
	}
	if num < 1 {
		return strconv.Itoa(int(num*100)) + "%"
	}
	return strconv.Itoa(int(num)) + "%"
}

// cleanAmount normalizes a raw amount: spaces around the decimal comma and
// thousand-separating spaces between digits are removed, and the currency
// glyph gets exactly one preceding space.
func cleanAmount(amount string) string {
	if amount == "" {
		return ""
	}

	cleaned := commaSpaceRe.ReplaceAllString(amount, ",")
	for {
		next := digitGapRe.ReplaceAllString(cleaned, "$1$2")
		if next == cleaned {
			break
		}
		cleaned = next
	}
	cleaned = euroGlueRe.ReplaceAllString(cleaned, "$1 €")

	return strings.TrimSpace(cleaned)
}

// withCurrency appends the currency glyph when the amount lacks one.
func withCurrency(amount string) string {
	if amount == "" || strings.HasSuffix(amount, "€") {
		return amount
	}
	return amount + " €"
}
