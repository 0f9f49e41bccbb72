package rt

// PropertyTag identifies a named, user-extensible predicate on types and
// values. Tag identity is by reference, not by name: two tags with the
// same Name are distinct unless they are the same *PropertyTag.
type PropertyTag struct {
	Name          string // debug only
	ArgumentTypes []Type
	TypeMatcher   func(t *Type, args []Value) TypeMatch
	ValueMatcher  func(v Value, args []Value) bool
}

// Property pairs a tag with the arguments it was applied with.
type Property struct {
	Tag  *PropertyTag
	Args []Value
}

// Properties is a mapping from tag identity to argument list, unique per
// tag (§3.5).
type Properties struct {
	order []*PropertyTag
	byTag map[*PropertyTag]Property
}

func NewProperties() *Properties {
	return &Properties{byTag: make(map[*PropertyTag]Property)}
}

// Set attaches or replaces the property for tag.
func (p *Properties) Set(tag *PropertyTag, args []Value) {
	if _, exists := p.byTag[tag]; !exists {
		p.order = append(p.order, tag)
	}
	p.byTag[tag] = Property{Tag: tag, Args: args}
}

// Get returns the property registered for tag, if any.
func (p *Properties) Get(tag *PropertyTag) (Property, bool) {
	if p == nil {
		return Property{}, false
	}
	prop, ok := p.byTag[tag]
	return prop, ok
}

// Has reports whether tag is present.
func (p *Properties) Has(tag *PropertyTag) bool {
	if p == nil {
		return false
	}
	_, ok := p.byTag[tag]
	return ok
}

// Each iterates properties in the order they were first set.
func (p *Properties) Each(fn func(Property)) {
	if p == nil {
		return
	}
	for _, tag := range p.order {
		fn(p.byTag[tag])
	}
}

// Len reports the number of distinct properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}
