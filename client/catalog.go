package client

// DedupeByCountry collapses the list to one offering per country. The
// last-seen offering for a country wins, surviving entries keep their original
// field values, and position order follows the first occurrence of each
// country. Deduping an already-deduped list is a no-op.
func DedupeByCountry(visas []Visa) []Visa {
	index := make(map[string]int, len(visas))
	out := make([]Visa, 0, len(visas))
	for _, visa := range visas {
		if i, ok := index[visa.Country]; ok {
			out[i] = visa
			continue
		}
		index[visa.Country] = len(out)
		out = append(out, visa)
	}
	return out
}

// FilterByVisaType narrows the list to exact matches on visa_type. The empty
// string means no filter.
func FilterByVisaType(visas []Visa, visaType string) []Visa {
	if visaType == "" {
		return visas
	}
	out := make([]Visa, 0, len(visas))
	for _, visa := range visas {
		if visa.VisaType == visaType {
			out = append(out, visa)
		}
	}
	return out
}

// VisaTypes returns the distinct visa types in first-seen order, for the
// catalog's filter dropdown.
func VisaTypes(visas []Visa) []string {
	seen := make(map[string]bool, len(visas))
	out := make([]string, 0, len(visas))
	for _, visa := range visas {
		if seen[visa.VisaType] {
			continue
		}
		seen[visa.VisaType] = true
		out = append(out, visa.VisaType)
	}
	return out
}
