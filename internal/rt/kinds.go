// Package rt implements the value/type core: the tagged Value union, the
// algebraic Type lattice, the Property extension mechanism, and the
// eight-valued match relation that subtyping, overload ranking, and
// structural checks are built on.
package rt

// ValueKind tags the discriminated union carried by every Value.
type ValueKind uint8

const (
	KindNone ValueKind = iota
	KindInteger
	KindUnsigned
	KindFloat
	KindBoolean
	KindList
	KindString
	KindArray
	KindReference
	KindComposite
	KindPropertyReference
	KindType
	KindNativeFunction
	KindFunction
	KindEffect
	KindSet
	KindTable
	KindExpression
	KindStatement
	KindScope
)

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindInteger:
		return "Integer"
	case KindUnsigned:
		return "Unsigned"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindList:
		return "List"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindReference:
		return "Reference"
	case KindComposite:
		return "Composite"
	case KindPropertyReference:
		return "PropertyReference"
	case KindType:
		return "Type"
	case KindNativeFunction:
		return "NativeFunction"
	case KindFunction:
		return "Function"
	case KindEffect:
		return "Effect"
	case KindSet:
		return "Set"
	case KindTable:
		return "Table"
	case KindExpression:
		return "Expression"
	case KindStatement:
		return "Statement"
	case KindScope:
		return "Scope"
	default:
		return "Unknown"
	}
}

// TypeKind tags the discriminated union carried by every Type.
type TypeKind uint8

const (
	// Concrete kinds: describe a single class of runtime values.
	TypeNoneValue TypeKind = iota
	TypeInteger
	TypeUnsigned
	TypeFloat
	TypeBoolean
	TypeFunction
	TypeTuple
	TypeReference
	TypeList
	TypeString
	TypeSet
	TypeTable
	TypeExpression
	TypeStatement
	TypeScope
	TypeComposite
	TypeType

	// Typeclass kinds: describe sets of types.
	TypeAny
	TypeNone
	TypeUnion
	TypeIntersection
	TypeNot
	TypeBaseType
	TypeWithProperty

	// Matcher kind.
	TypeCustomMatcher
)

// IsConcrete reports whether a TypeKind describes a single class of runtime
// values (as opposed to a typeclass or matcher kind).
func (k TypeKind) IsConcrete() bool {
	return k <= TypeType
}

// IsAtomic reports whether a concrete kind carries no structural payload
// beyond its kind tag.
func (k TypeKind) IsAtomic() bool {
	switch k {
	case TypeNoneValue, TypeInteger, TypeUnsigned, TypeFloat, TypeBoolean,
		TypeString, TypeExpression, TypeStatement, TypeScope:
		return true
	default:
		return false
	}
}

func (k TypeKind) String() string {
	switch k {
	case TypeNoneValue:
		return "NoneValue"
	case TypeInteger:
		return "Integer"
	case TypeUnsigned:
		return "Unsigned"
	case TypeFloat:
		return "Float"
	case TypeBoolean:
		return "Boolean"
	case TypeFunction:
		return "Function"
	case TypeTuple:
		return "Tuple"
	case TypeReference:
		return "Reference"
	case TypeList:
		return "List"
	case TypeString:
		return "String"
	case TypeSet:
		return "Set"
	case TypeTable:
		return "Table"
	case TypeExpression:
		return "Expression"
	case TypeStatement:
		return "Statement"
	case TypeScope:
		return "Scope"
	case TypeComposite:
		return "Composite"
	case TypeType:
		return "Type"
	case TypeAny:
		return "Any"
	case TypeNone:
		return "None"
	case TypeUnion:
		return "Union"
	case TypeIntersection:
		return "Intersection"
	case TypeNot:
		return "Not"
	case TypeBaseType:
		return "BaseType"
	case TypeWithProperty:
		return "WithProperty"
	case TypeCustomMatcher:
		return "CustomMatcher"
	default:
		return "Unknown"
	}
}
