package rt

import "reflect"

// Hash contract (§4.1): atoms of equal value hash equal; Reference,
// Function, NativeFunction, Expression and Scope hash by pointer identity,
// matching their identity-based equality. A nil heap payload — an
// uninitialized Value of a pointer-backed kind — hashes to a fixed
// sentinel distinct from any live pointer's hash.
func Hash(v Value) uint64 {
	h := fnvMix(fnvOffset, uint64(v.kind))
	switch v.kind {
	case KindNone:
		return h
	case KindInteger, KindUnsigned, KindBoolean, KindFloat:
		return fnvMix(h, v.data)
	case KindString:
		return fnvMix(h, hashBytes(v.AsBytes()))
	case KindList:
		for _, item := range v.ListItems() {
			h = fnvMix(h, Hash(item))
		}
		return h
	case KindArray:
		for _, item := range v.ArrayItems() {
			h = fnvMix(h, Hash(item))
		}
		return h
	case KindReference, KindFunction, KindNativeFunction:
		return fnvMix(h, ptrHashOrSentinel(v.obj))
	case KindExpression:
		return fnvMix(h, ptrHashOrSentinel(v.obj.(*expressionObj).expr))
	case KindScope:
		return fnvMix(h, ptrHashOrSentinel(v.obj.(*scopeObj).scope))
	case KindComposite:
		var acc uint64
		for name, val := range v.CompositeFields() {
			acc += fnvMix(hashBytes([]byte(name)), Hash(val))
		}
		return fnvMix(h, acc)
	case KindPropertyReference:
		return fnvMix(h, Hash(v.PropertyRefValue()))
	case KindType:
		return fnvMix(h, HashType(v.TypeValue()))
	case KindEffect:
		return fnvMix(h, Hash(v.EffectInner()))
	case KindSet:
		var acc uint64
		EachSetEntry(v, func(item Value) bool { acc += Hash(item); return true })
		return fnvMix(h, acc)
	case KindTable:
		var acc uint64
		EachTableEntry(v, func(k, val Value) bool { acc += fnvMix(Hash(k), Hash(val)); return true })
		return fnvMix(h, acc)
	case KindStatement:
		return fnvMix(h, HashStatement(v.StatementValue()))
	default:
		return h
	}
}

const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211

	// nilSentinel stands in for the hash of a nil pointer payload; chosen
	// so it never collides with a real 64-bit address on the platforms Go
	// targets.
	nilSentinel uint64 = ^uint64(0)
)

func fnvMix(h, x uint64) uint64 {
	h ^= x
	h *= fnvPrime
	return h
}

func hashBytes(b []byte) uint64 {
	h := fnvOffset
	for _, c := range b {
		h = fnvMix(h, uint64(c))
	}
	return h
}

func ptrHashOrSentinel(obj any) uint64 {
	if obj == nil {
		return nilSentinel
	}
	rv := reflect.ValueOf(obj)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nilSentinel
	}
	return uint64(rv.Pointer())
}

func funcPtrHash(f any) uint64 {
	rv := reflect.ValueOf(f)
	if !rv.IsValid() || rv.IsNil() {
		return nilSentinel
	}
	return uint64(rv.Pointer())
}

// HashType structurally hashes a Type; ref-typed subfields that are nil
// hash to nilSentinel, matching TypeEqual's nil handling.
func HashType(t *Type) uint64 {
	if t == nil {
		return nilSentinel
	}
	h := fnvMix(fnvOffset, uint64(t.kind))
	switch t.kind {
	case TypeFunction:
		h = fnvMix(h, hashTypePtr(t.arguments))
		h = fnvMix(h, hashTypePtr(t.returnType))
	case TypeTuple:
		for i := range t.elements {
			h = fnvMix(h, HashType(&t.elements[i]))
		}
		h = fnvMix(h, hashTypePtr(t.varargs))
	case TypeReference, TypeList, TypeSet, TypeType:
		h = fnvMix(h, hashTypePtr(t.inner))
	case TypeTable:
		h = fnvMix(h, hashTypePtr(t.key))
		h = fnvMix(h, hashTypePtr(t.value))
	case TypeComposite:
		var acc uint64
		for name, ft := range t.fields {
			ftCopy := ft
			acc += fnvMix(hashBytes([]byte(name)), HashType(&ftCopy))
		}
		h = fnvMix(h, acc)
	case TypeUnion, TypeIntersection:
		for i := range t.operands {
			h = fnvMix(h, HashType(&t.operands[i]))
		}
	case TypeNot:
		h = fnvMix(h, hashTypePtr(t.inner))
	case TypeBaseType:
		h = fnvMix(h, uint64(t.baseKind))
	case TypeWithProperty:
		h = fnvMix(h, ptrHashOrSentinel(t.tag))
		h = fnvMix(h, hashTypePtr(t.inner))
	case TypeCustomMatcher:
		h = fnvMix(h, funcPtrHash(t.typeMatcher))
		h = fnvMix(h, funcPtrHash(t.valueMatcher))
	}
	return h
}

func hashTypePtr(t *Type) uint64 {
	if t == nil {
		return nilSentinel
	}
	return HashType(t)
}
