package rt

// CheckType mirrors Match but tests a concrete value against a type
// (§4.3). It returns a plain boolean: checkType is used as an assertion,
// not ranked like Match is.
func CheckType(v Value, t *Type) bool {
	if !checkTypeCore(v, t) {
		return false
	}
	return checkRuntimeProperties(v, t)
}

func checkRuntimeProperties(v Value, t *Type) bool {
	ok := true
	t.Properties().Each(func(p Property) {
		if !ok || p.Tag.ValueMatcher == nil {
			return
		}
		if !p.Tag.ValueMatcher(v, p.Args) {
			ok = false
		}
	})
	return ok
}

func checkTypeCore(v Value, t *Type) bool {
	switch t.kind {
	case TypeAny:
		return true
	case TypeNone:
		return false
	case TypeUnion:
		for i := range t.operands {
			if CheckType(v, &t.operands[i]) {
				return true
			}
		}
		return false
	case TypeIntersection:
		for i := range t.operands {
			if !CheckType(v, &t.operands[i]) {
				return false
			}
		}
		return true
	case TypeNot:
		return !CheckType(v, t.inner)
	case TypeBaseType:
		return ToType(v).Kind() == t.baseKind
	case TypeWithProperty:
		if !hasRuntimeProperty(v, t.tag) {
			return false
		}
		return CheckType(v, t.inner)
	case TypeCustomMatcher:
		if t.valueMatcher == nil {
			return false
		}
		return t.valueMatcher(v)
	default:
		return checkConcrete(v, t)
	}
}

func hasRuntimeProperty(v Value, tag *PropertyTag) bool {
	if v.Kind() == KindPropertyReference && v.PropertyRefProperties().Has(tag) {
		return true
	}
	return ToType(v).Properties().Has(tag)
}

func checkConcrete(v Value, t *Type) bool {
	switch t.kind {
	case TypeNoneValue:
		return v.IsNone()
	case TypeInteger:
		return v.Kind() == KindInteger
	case TypeUnsigned:
		return v.Kind() == KindUnsigned
	case TypeFloat:
		return v.Kind() == KindFloat
	case TypeBoolean:
		return v.Kind() == KindBoolean
	case TypeString:
		return v.Kind() == KindString
	case TypeExpression:
		return v.Kind() == KindExpression
	case TypeStatement:
		return v.Kind() == KindStatement
	case TypeScope:
		return v.Kind() == KindScope
	case TypeFunction:
		return v.Kind() == KindFunction || v.Kind() == KindNativeFunction
	case TypeReference:
		return v.Kind() == KindReference && CheckType(v.RefGet(), t.inner)
	case TypeList:
		if v.Kind() != KindList {
			return false
		}
		for _, item := range v.ListItems() {
			if !CheckType(item, t.inner) {
				return false
			}
		}
		return true
	case TypeSet:
		if v.Kind() != KindSet {
			return false
		}
		ok := true
		EachSetEntry(v, func(item Value) bool {
			if !CheckType(item, t.inner) {
				ok = false
				return false
			}
			return true
		})
		return ok
	case TypeTable:
		if v.Kind() != KindTable {
			return false
		}
		ok := true
		EachTableEntry(v, func(k, val Value) bool {
			if !CheckType(k, t.key) || !CheckType(val, t.value) {
				ok = false
				return false
			}
			return true
		})
		return ok
	case TypeTuple:
		return checkTuple(v, t)
	case TypeComposite:
		if v.Kind() != KindComposite {
			return false
		}
		fields := v.CompositeFields()
		if len(fields) != len(t.fields) {
			return false
		}
		for name, ft := range t.fields {
			fv, ok := fields[name]
			if !ok || !CheckType(fv, &ft) {
				return false
			}
		}
		return true
	case TypeType:
		return v.Kind() == KindType && Match(t.inner, v.TypeValue()).Matches()
	default:
		return false
	}
}

func checkTuple(v Value, t *Type) bool {
	if v.Kind() != KindArray {
		return false
	}
	items := v.ArrayItems()
	if t.varargs == nil {
		if len(items) != len(t.elements) {
			return false
		}
		for i, el := range t.elements {
			if !CheckType(items[i], &el) {
				return false
			}
		}
		return true
	}
	if len(items) < len(t.elements) {
		return false
	}
	for i, el := range t.elements {
		if !CheckType(items[i], &el) {
			return false
		}
	}
	for _, extra := range items[len(t.elements):] {
		if !CheckType(extra, t.varargs) {
			return false
		}
	}
	return true
}
