package person

import "strings"

// Predicate selects persons for the displayed list.
type Predicate func(*Person) bool

// ShowAll matches every person.
func ShowAll(*Person) bool { return true }

// ContainsKeywords matches a person when any keyword is a case-insensitive
// substring of the name, phone, email, address, a tag, an attribute key or
// value, or a lesson subject. With no keywords it matches everyone.
func ContainsKeywords(keywords ...string) Predicate {
	needles := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			needles = append(needles, k)
		}
	}
	if len(needles) == 0 {
		return ShowAll
	}
	return func(p *Person) bool {
		haystack := searchableText(p)
		for _, n := range needles {
			for _, h := range haystack {
				if strings.Contains(h, n) {
					return true
				}
			}
		}
		return false
	}
}

func searchableText(p *Person) []string {
	out := []string{
		strings.ToLower(p.name.String()),
		strings.ToLower(p.phone.String()),
		strings.ToLower(p.email.String()),
		strings.ToLower(p.address.String()),
	}
	for _, t := range p.tags {
		out = append(out, strings.ToLower(string(t)))
	}
	for _, a := range p.attributes.attrs {
		out = append(out, a.key)
		for _, v := range a.values {
			out = append(out, strings.ToLower(v))
		}
	}
	for _, l := range p.lessons.lessons {
		out = append(out, strings.ToLower(l.subject))
	}
	return out
}
