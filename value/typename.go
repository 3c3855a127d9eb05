package value

// TypeName returns the value's reported type name, honoring a Map's
// overloaded "@type" meta entry and Number's Int/Float distinction
// (mirrors Value::type_as_string in the Rust original's value.rs).
func TypeName(v Value) string {
	switch t := v.(type) {
	case Number:
		return t.TypeName()
	case *Map:
		if mt, ok := t.MetaValue(MetaType); ok {
			if s, ok2 := mt.(Str); ok2 {
				return s.Go()
			}
			return "Error: expected string for overloaded type"
		}
		return "Map"
	case ExternalValue:
		return t.ValueType()
	default:
		return v.Type()
	}
}

// DeepCopier is implemented by value kinds whose default (shallow) copy
// isn't a deep copy: the iterator package's IteratorValue implements this
// by delegating to Iterator.MakeCopy.
type DeepCopier interface {
	DeepCopy() Value
}

// DeepCopy returns a recursive deep copy of v, matching Value::deep_copy
// in the Rust original: List/Tuple/Map are copied element-wise, an
// Iterator is copied via MakeCopy, and everything else (being either
// copy-semantic or intentionally shared, e.g. functions) is returned as
// itself.
func DeepCopy(v Value) Value {
	switch t := v.(type) {
	case *List:
		data := make([]Value, t.Len())
		for i, e := range t.Data() {
			data[i] = DeepCopy(e)
		}
		return NewList(data)
	case Tuple:
		data := make(Tuple, len(t))
		for i, e := range t {
			data[i] = DeepCopy(e)
		}
		return data
	case *Map:
		result := NewMap()
		t.Each(func(k, val Value) bool {
			result.Insert(k, DeepCopy(val))
			return true
		})
		if meta := t.MetaMap(); meta != nil {
			copiedMeta := NewMap()
			meta.Each(func(k, val Value) bool {
				copiedMeta.Insert(k, val)
				return true
			})
			result.SetMetaMap(copiedMeta)
		}
		return result
	case DeepCopier:
		return t.DeepCopy()
	default:
		return v
	}
}
