package rt

import "bytes"

// Equal contract (§4.1): atoms of different kinds are never equal; atoms
// of the same kind compare by payload; Reference, Function, NativeFunction,
// Expression and Scope compare by identity, the sole cycle-breaker for
// otherwise-cyclic Value graphs.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNone:
		return true
	case KindInteger, KindUnsigned, KindBoolean, KindFloat:
		return a.data == b.data
	case KindString:
		return bytes.Equal(a.AsBytes(), b.AsBytes())
	case KindList:
		return valueSliceEqual(a.ListItems(), b.ListItems())
	case KindArray:
		return valueSliceEqual(a.ArrayItems(), b.ArrayItems())
	case KindReference, KindFunction, KindNativeFunction:
		return a.obj == b.obj
	case KindExpression:
		return a.obj.(*expressionObj).expr == b.obj.(*expressionObj).expr
	case KindScope:
		return a.obj.(*scopeObj).scope == b.obj.(*scopeObj).scope
	case KindComposite:
		af, bf := a.CompositeFields(), b.CompositeFields()
		if len(af) != len(bf) {
			return false
		}
		for name, v := range af {
			bv, ok := bf[name]
			if !ok || !Equal(v, bv) {
				return false
			}
		}
		return true
	case KindPropertyReference:
		return propertiesEqual(a.PropertyRefProperties(), b.PropertyRefProperties()) &&
			Equal(a.PropertyRefValue(), b.PropertyRefValue())
	case KindType:
		return TypeEqual(a.TypeValue(), b.TypeValue())
	case KindEffect:
		return Equal(a.EffectInner(), b.EffectInner())
	case KindSet:
		return setEqual(a, b)
	case KindTable:
		return tableEqual(a, b)
	case KindStatement:
		return StatementEqual(a.StatementValue(), b.StatementValue())
	default:
		return false
	}
}

func valueSliceEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func propertiesEqual(a, b *Properties) bool {
	if a.Len() != b.Len() {
		return false
	}
	ok := true
	a.Each(func(p Property) {
		if !ok {
			return
		}
		bp, has := b.Get(p.Tag)
		if !has || !valueSliceEqual(p.Args, bp.Args) {
			ok = false
		}
	})
	return ok
}

// TypeEqual traverses structurally; ref-typed subfields compare by
// pointed-to content when both sides are non-null, by reference nullness
// otherwise (§4.1).
func TypeEqual(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind {
		return false
	}
	if !propertiesEqual(a.properties, b.properties) {
		return false
	}
	switch a.kind {
	case TypeFunction:
		return typeEqPtr(a.arguments, b.arguments) && typeEqPtr(a.returnType, b.returnType)
	case TypeTuple:
		if len(a.elements) != len(b.elements) {
			return false
		}
		for i := range a.elements {
			if !TypeEqual(&a.elements[i], &b.elements[i]) {
				return false
			}
		}
		return typeEqPtr(a.varargs, b.varargs)
	case TypeReference, TypeList, TypeSet, TypeType:
		return typeEqPtr(a.inner, b.inner)
	case TypeTable:
		return typeEqPtr(a.key, b.key) && typeEqPtr(a.value, b.value)
	case TypeComposite:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for name, ft := range a.fields {
			bt, ok := b.fields[name]
			if !ok {
				return false
			}
			ftCopy, btCopy := ft, bt
			if !TypeEqual(&ftCopy, &btCopy) {
				return false
			}
		}
		return true
	case TypeUnion, TypeIntersection:
		if len(a.operands) != len(b.operands) {
			return false
		}
		for i := range a.operands {
			if !TypeEqual(&a.operands[i], &b.operands[i]) {
				return false
			}
		}
		return true
	case TypeNot:
		return typeEqPtr(a.inner, b.inner)
	case TypeBaseType:
		return a.baseKind == b.baseKind
	case TypeWithProperty:
		return a.tag == b.tag && typeEqPtr(a.inner, b.inner)
	case TypeCustomMatcher:
		return funcPtrEqual(a.typeMatcher, b.typeMatcher) && funcPtrEqual(a.valueMatcher, b.valueMatcher)
	default:
		return true // atomic kinds carry no further payload
	}
}

func typeEqPtr(a, b *Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return TypeEqual(a, b)
}

func funcPtrEqual(a, b any) bool {
	return funcPtrHash(a) == funcPtrHash(b)
}

func setEqual(a, b Value) bool {
	as, bs := a.obj.(*setObj), b.obj.(*setObj)
	if setLen(as) != setLen(bs) {
		return false
	}
	ok := true
	EachSetEntry(a, func(item Value) bool {
		if !setHasRaw(bs, item) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func tableEqual(a, b Value) bool {
	at, bt := a.obj.(*tableObj), b.obj.(*tableObj)
	if tableLen(at) != tableLen(bt) {
		return false
	}
	ok := true
	EachTableEntry(a, func(k, val Value) bool {
		bv, has := tableGetRaw(bt, k)
		if !has || !Equal(val, bv) {
			ok = false
			return false
		}
		return true
	})
	return ok
}
