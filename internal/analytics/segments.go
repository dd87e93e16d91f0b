package analytics

// Segment labels assigned by the composite-score lookup table.
const (
	SegmentChampions          = "Champions"
	SegmentLoyalCustomers     = "Loyal Customers"
	SegmentPotentialLoyalists = "Potential Loyalists"
	SegmentNewCustomers       = "New Customers"
	SegmentAtRisk             = "At Risk"
	SegmentLost               = "Lost"
	SegmentOthers             = "Others"
)

// segmentRules maps composite RFM codes to segment labels. The table is an
// intentionally incomplete partition of the 125 possible codes: anything
// unmatched falls through to Others, and codes 114/115 are listed under both
// New Customers and Lost, with the earlier entry winning. Both quirks are
// part of the published rule set and are kept as-is.
var segmentRules = []struct {
	label string
	codes []string
}{
	{SegmentChampions, []string{"555", "554", "544", "545", "454", "455", "445"}},
	{SegmentLoyalCustomers, []string{"543", "444", "435", "355", "354", "345", "344", "335"}},
	{SegmentPotentialLoyalists, []string{"512", "511", "422", "421", "412", "411", "311"}},
	{SegmentNewCustomers, []string{"155", "154", "144", "214", "215", "115", "114"}},
	{SegmentAtRisk, []string{"331", "321", "231", "241", "251"}},
	{SegmentLost, []string{"111", "112", "113", "114", "115"}},
}

var segmentByCode = buildSegmentIndex()

func buildSegmentIndex() map[string]string {
	index := make(map[string]string)
	for _, rule := range segmentRules {
		for _, code := range rule.codes {
			if _, exists := index[code]; !exists {
				index[code] = rule.label
			}
		}
	}
	return index
}

// SegmentFor returns the segment label for a composite score, defaulting to
// Others for unmatched codes.
func SegmentFor(composite string) string {
	if label, ok := segmentByCode[composite]; ok {
		return label
	}
	return SegmentOthers
}
