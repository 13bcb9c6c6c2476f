package class

import (
	"github.com/leapstack-labs/phonet/pkg/core"
)

// AnyClassName is the name of the class listing every legal character.
const AnyClassName = "_"

// Class is a named pattern fragment.
type Class struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value" yaml:"value"`
	Resolved string `json:"resolved" yaml:"resolved"`
	Line     int    `json:"line" yaml:"line"`
}

// Builder collects class definitions in order during parsing.
type Builder struct {
	order   []string
	classes map[string]*Class
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{classes: make(map[string]*Class)}
}

// Define adds a class. Names must be unique.
func (b *Builder) Define(name, value string, line int) error {
	if _, exists := b.classes[name]; exists {
		return &core.Error{Kind: core.ErrClassAlreadyExists, Name: name, Line: line}
	}
	b.order = append(b.order, name)
	b.classes[name] = &Class{Name: name, Value: value, Line: line}
	return nil
}

// Len returns the number of defined classes.
func (b *Builder) Len() int {
	return len(b.order)
}

// Freeze resolves every class and returns the immutable table.
// The builder must not be used afterwards.
func (b *Builder) Freeze() (*Table, error) {
	r := &resolver{classes: b.classes}
	for _, name := range b.order {
		c := b.classes[name]
		if _, err := r.resolve(name, c.Line); err != nil {
			return nil, err
		}
	}

	t := &Table{
		order:   b.order,
		classes: make(map[string]Class, len(b.classes)),
	}
	for name, c := range b.classes {
		t.classes[name] = *c
	}
	b.order, b.classes = nil, nil
	return t, nil
}

// Table is the frozen, fully resolved class table.
type Table struct {
	order   []string
	classes map[string]Class
}

// Empty returns a table with no classes.
func Empty() *Table {
	return &Table{classes: map[string]Class{}}
}

// Get looks up a class by name.
func (t *Table) Get(name string) (Class, bool) {
	c, ok := t.classes[name]
	return c, ok
}

// Len returns the number of classes.
func (t *Table) Len() int {
	return len(t.order)
}

// All returns the classes in definition order.
func (t *Table) All() []Class {
	out := make([]Class, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.classes[name])
	}
	return out
}

// Substitute replaces every class reference in pattern with its resolved value.
// line is reported in errors.
func (t *Table) Substitute(pattern string, line int) (string, error) {
	r := &resolver{frozen: t.classes}
	return r.expand(pattern, line)
}

// AnyAlphabet returns the alphabet of the any-class.
func (t *Table) AnyAlphabet() ([]rune, error) {
	c, ok := t.classes[AnyClassName]
	if !ok {
		return nil, &core.Error{Kind: core.ErrMissingAnyClass}
	}

	alphabet := Alphabet(c.Resolved)
	if len(alphabet) == 0 {
		return nil, &core.Error{Kind: core.ErrEmptyAlphabet, Name: AnyClassName, Line: c.Line}
	}
	return alphabet, nil
}
