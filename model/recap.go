package model

// RecapRecord is the trailing summary block of a priced page: two groups of
// weighted cost factors (own works K1-K3, subcontracted works K4-K6), their
// subtotals, and the final sale price. Every field defaults to the empty
// string and stays empty when its anchor line is not found; the parser never
// injects synthetic zeros.
type RecapRecord struct {
	// Part A: own works
	Total5    string `json:"total_5,omitempty"`
	K1Pct     string `json:"k1_pct,omitempty"`
	K1Amount  string `json:"k1_amount,omitempty"`
	K2Pct     string `json:"k2_pct,omitempty"`
	K2Amount  string `json:"k2_amount,omitempty"`
	K3Pct     string `json:"k3_pct,omitempty"`
	K3Amount  string `json:"k3_amount,omitempty"`
	TotalAPct string `json:"total_a_pct,omitempty"`
	TotalA    string `json:"total_a,omitempty"`

	// Part B: subcontracted works and supplies
	Total7    string `json:"total_7,omitempty"`
	K4Pct     string `json:"k4_pct,omitempty"`
	K4Amount  string `json:"k4_amount,omitempty"`
	K5Pct     string `json:"k5_pct,omitempty"`
	K5Amount  string `json:"k5_amount,omitempty"`
	K6Pct     string `json:"k6_pct,omitempty"`
	K6Amount  string `json:"k6_amount,omitempty"`
	TotalBPct string `json:"total_b_pct,omitempty"`
	TotalB    string `json:"total_b,omitempty"`

	// Final price
	SalePrice    string `json:"sale_price,omitempty"`
	RoundedPrice string `json:"rounded_price,omitempty"`
}

// IsEmpty reports whether no field of the record was populated.
func (r *RecapRecord) IsEmpty() bool {
	if r == nil {
		return true
	}
	return *r == RecapRecord{}
}
