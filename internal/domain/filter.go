package domain

// FilterAll is the type selector value that keeps every record.
const FilterAll = "All"

// FilterByType returns the records whose Type equals selected exactly.
// FilterAll or an empty selection returns every record.
func FilterByType(records []Opportunity, selected string) []Opportunity {
	if selected == "" || selected == FilterAll {
		return records
	}
	out := make([]Opportunity, 0, len(records))
	for _, r := range records {
		if r.Type == selected {
			out = append(out, r)
		}
	}
	return out
}

// FilterByPriority returns the records with the given priority label.
func FilterByPriority(records []Opportunity, priority string) []Opportunity {
	out := make([]Opportunity, 0, len(records))
	for _, r := range records {
		if r.Priority == priority {
			out = append(out, r)
		}
	}
	return out
}

// DistinctTypes returns the opportunity types in first-seen order.
func DistinctTypes(records []Opportunity) []string {
	return distinct(records, func(o Opportunity) string { return o.Type })
}

// DistinctMunicipalities returns the municipalities in first-seen order.
func DistinctMunicipalities(records []Opportunity) []string {
	return distinct(records, func(o Opportunity) string { return o.Municipality })
}

func distinct(records []Opportunity, key func(Opportunity) string) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
