package vdom

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value Value
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Attrs is an ordered attribute list. Build it with NewAttrs or Set to get
// map semantics: unique keys, each keeping the position of its first insertion.
// The renderer emits entries exactly as stored.
type Attrs []Attr

// attr creates an Attr with the given key and value.
func attr(key string, value Value) Attr {
	return Attr{Key: key, Value: value}
}

// Str creates a string attribute.
func Str(key, value string) Attr { return attr(key, StringValue(value)) }

// Num creates a numeric attribute.
func Num(key string, value float64) Attr { return attr(key, NumberValue(value)) }

// Int creates a numeric attribute from an int.
func Int(key string, value int) Attr { return attr(key, NumberValue(float64(value))) }

// Flag creates a boolean attribute. false renders as name="false"; it is not omitted.
func Flag(key string, value bool) Attr { return attr(key, BoolValue(value)) }

// NewAttrs builds Attrs from attrs in order. Empty attributes are ignored and
// a repeated key replaces the earlier value in place.
func NewAttrs(attrs ...Attr) Attrs {
	out := make(Attrs, 0, len(attrs))
	for _, a := range attrs {
		if a.IsEmpty() {
			continue
		}
		out = out.Set(a.Key, a.Value)
	}
	return out
}

// Set returns attrs with key set to value. An existing key keeps its position.
// The receiver is not modified.
func (as Attrs) Set(key string, value Value) Attrs {
	for i, a := range as {
		if a.Key == key {
			out := make(Attrs, len(as))
			copy(out, as)
			out[i].Value = value
			return out
		}
	}
	out := make(Attrs, len(as), len(as)+1)
	copy(out, as)
	return append(out, attr(key, value))
}

// Get returns the value stored under key.
func (as Attrs) Get(key string) (Value, bool) {
	for _, a := range as {
		if a.Key == key {
			return a.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of attributes.
func (as Attrs) Len() int { return len(as) }

// Keys returns the attribute names in order.
func (as Attrs) Keys() []string {
	keys := make([]string, len(as))
	for i, a := range as {
		keys[i] = a.Key
	}
	return keys
}
