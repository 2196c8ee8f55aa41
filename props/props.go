// Package props holds the free-form name/value properties attached to maps,
// tiles and objects.
package props

// Property is a single name/value pair.
type Property struct {
	Name  string
	Value string
}

// Properties is an ordered property bag. Names are expected to be unique;
// Get returns the first match.
type Properties []Property

// Get returns the property called name.
func (p Properties) Get(name string) (Property, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// Value returns the value of the property called name, or "".
func (p Properties) Value(name string) string {
	prop, _ := p.Get(name)
	return prop.Value
}

// Set updates the property called name, appending it if it is missing.
func (p *Properties) Set(name, value string) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Property{Name: name, Value: value})
}

// Delete removes the property called name and reports whether it existed.
func (p *Properties) Delete(name string) bool {
	for i := range *p {
		if (*p)[i].Name == name {
			*p = append((*p)[:i], (*p)[i+1:]...)
			return true
		}
	}
	return false
}
