package vdom

import "strings"

// Attr represents a single property.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id property.
func ID(id string) Attr { return attr("id", id) }

// Class sets the className property, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("className", strings.Join(classes, " ")) }

// Value sets the value property.
func Value(value any) Attr { return attr("value", value) }

// Type sets the type property.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder property.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Checked sets the checked property.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Disabled sets the disabled property.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Prop sets an arbitrary property.
func Prop(key string, value any) Attr { return attr(key, value) }
