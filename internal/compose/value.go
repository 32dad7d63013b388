// Package compose builds and serializes Docker Compose documents.
//
// Documents are assembled from typed Services and converted through a small
// closed set of values (Scalar, List, Map, Records) into yaml.v3 nodes, so
// keys come out in insertion order and every scalar reads back as the same
// string.
package compose

// Value is one of Scalar, List, Map or Records.
type Value interface {
	isValue()
}

// Scalar is a single string value.
type Scalar string

// List is a sequence of scalars.
type List []string

// Field is one key of a Map.
type Field struct {
	Key   string
	Value Value
}

// Map is an ordered mapping. A nil Value renders as an empty entry ("key:").
type Map []Field

// Records is a sequence of mappings, such as ipam.config.
type Records []Map

func (Scalar) isValue()  {}
func (List) isValue()    {}
func (Map) isValue()     {}
func (Records) isValue() {}

// Get returns the value stored under key.
func (m Map) Get(key string) (Value, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces key in place or appends it.
func (m Map) Set(key string, v Value) Map {
	for i, f := range m {
		if f.Key == key {
			m[i].Value = v
			return m
		}
	}
	return append(m, Field{Key: key, Value: v})
}
