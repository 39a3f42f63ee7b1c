package opportunity

import "strings"

// Filter is the bag of optional listing parameters. All populated fields
// combine with AND semantics, except Search: when Search is set every other
// field is ignored and matching falls back to a case-insensitive substring
// test against the title or the owning company's name.
type Filter struct {
	Category        string
	Status          string
	ExperienceLevel string
	Location        string
	Types           []string
	Tags            []string
	MinSalary       *int
	MaxSalary       *int
	Search          string
}

func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// Matches evaluates the filter against one opportunity. companyName is the
// owning company's display name, needed only for the Search branch.
func (f Filter) Matches(o Opportunity, companyName string) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		return strings.Contains(strings.ToLower(o.Title), needle) ||
			strings.Contains(strings.ToLower(companyName), needle)
	}
	if f.Category != "" && o.Category != f.Category {
		return false
	}
	if f.Status != "" && string(o.Status) != f.Status {
		return false
	}
	if f.ExperienceLevel != "" && o.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	// Location is an exact match after trimming, case-insensitive. Substring
	// matching is deliberately not used here.
	if f.Location != "" && !strings.EqualFold(strings.TrimSpace(f.Location), strings.TrimSpace(o.Location)) {
		return false
	}
	if len(f.Types) > 0 && !containsFold(f.Types, o.Type) {
		return false
	}
	if len(f.Tags) > 0 && !intersects(o.Tags, f.Tags) {
		return false
	}
	if f.MinSalary != nil && o.Salary.Min < *f.MinSalary {
		return false
	}
	if f.MaxSalary != nil && o.Salary.Max > *f.MaxSalary {
		return false
	}
	return true
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, left := range a {
		for _, right := range b {
			if left == right {
				return true
			}
		}
	}
	return false
}
