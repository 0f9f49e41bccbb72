package rt

// ToType derives the tightest concrete type describing v (§6). Container
// element types are widened via CommonType across all observed elements;
// an empty container widens to Any.
func ToType(v Value) *Type {
	switch v.Kind() {
	case KindNone:
		return NoneValueType
	case KindInteger:
		return IntegerType
	case KindUnsigned:
		return UnsignedType
	case KindFloat:
		return FloatType
	case KindBoolean:
		return BooleanType
	case KindString:
		return StringType
	case KindExpression:
		return ExpressionType
	case KindStatement:
		return StatementType
	case KindScope:
		return ScopeType
	case KindList:
		items := v.ListItems()
		if len(items) == 0 {
			return ListType(AnyType)
		}
		elem := ToType(items[0])
		for _, item := range items[1:] {
			elem = CommonType(elem, ToType(item))
		}
		return ListType(elem)
	case KindArray:
		items := v.ArrayItems()
		elems := make([]Type, len(items))
		for i, item := range items {
			elems[i] = *ToType(item)
		}
		return TupleType(elems, nil)
	case KindReference:
		return ReferenceType(ToType(v.RefGet()))
	case KindComposite:
		fields := v.CompositeFields()
		ftypes := make(map[string]Type, len(fields))
		for name, fv := range fields {
			ftypes[name] = *ToType(fv)
		}
		return CompositeType(ftypes)
	case KindPropertyReference:
		return ToType(v.PropertyRefValue()).WithProperties(v.PropertyRefProperties())
	case KindType:
		return MetaType(v.TypeValue())
	case KindNativeFunction:
		nf := v.NativeFunction()
		args := make([]Type, nf.Arity)
		for i := range args {
			args[i] = *AnyType
		}
		return FunctionType(TupleType(args, nil), AnyType)
	case KindFunction:
		// The closure's parameter count is recoverable from its
		// instruction tree at the call site; absent that context the
		// widest function type is the honest answer.
		return FunctionType(TupleType(nil, AnyType), AnyType)
	case KindEffect:
		return ToType(v.EffectInner())
	case KindSet:
		var elem *Type
		EachSetEntry(v, func(item Value) bool {
			if elem == nil {
				elem = ToType(item)
			} else {
				elem = CommonType(elem, ToType(item))
			}
			return true
		})
		if elem == nil {
			elem = AnyType
		}
		return SetType(elem)
	case KindTable:
		var kt, vt *Type
		EachTableEntry(v, func(k, val Value) bool {
			if kt == nil {
				kt, vt = ToType(k), ToType(val)
			} else {
				kt, vt = CommonType(kt, ToType(k)), CommonType(vt, ToType(val))
			}
			return true
		})
		if kt == nil {
			kt, vt = AnyType, AnyType
		}
		return TableType(kt, vt)
	default:
		return AnyType
	}
}
