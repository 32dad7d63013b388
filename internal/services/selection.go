package services

// Selection is the set of components chosen for one project, in the order
// the user gave them.
type Selection struct {
	Project    string
	Components []string
	categories map[string]Category
}

// Has reports whether name was selected.
func (s Selection) Has(name string) bool {
	_, ok := s.categories[name]
	return ok
}

// Of returns the selected components of category c.
func (s Selection) Of(c Category) []string {
	var out []string
	for _, n := range s.Components {
		if s.categories[n] == c {
			out = append(out, n)
		}
	}
	return out
}

// Database returns the first selected database, or "".
func (s Selection) Database() string {
	return first(s.Of(Database))
}

// Backend returns the first selected backend, or "".
func (s Selection) Backend() string {
	return first(s.Of(Backend))
}

// Frontend returns the first selected frontend, or "".
func (s Selection) Frontend() string {
	return first(s.Of(Frontend))
}

func first(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
