package rt

// TypeMatch is the outcome of matching a type (or a value) against a
// matcher type. The eight values are totally ordered:
//
//	Unknown < None < FiniteFalse < False < True < FiniteTrue < AlmostEqual < Equal
//
// The same ordering is used both as a lattice (min/max combine per-field
// results) and as a ranking (higher wins overload dispatch).
type TypeMatch int8

const (
	Unknown TypeMatch = iota
	None
	FiniteFalse
	False
	True
	FiniteTrue
	AlmostEqual
	Equal
)

func (m TypeMatch) String() string {
	switch m {
	case Unknown:
		return "Unknown"
	case None:
		return "None"
	case FiniteFalse:
		return "FiniteFalse"
	case False:
		return "False"
	case True:
		return "True"
	case FiniteTrue:
		return "FiniteTrue"
	case AlmostEqual:
		return "AlmostEqual"
	case Equal:
		return "Equal"
	default:
		return "?"
	}
}

// Matches reports whether m counts as a successful match (>= True).
func (m TypeMatch) Matches() bool { return m >= True }

// converse returns the match relation as seen from the other direction:
// True<->False, FiniteTrue<->FiniteFalse; everything else is self-converse.
func converse(m TypeMatch) TypeMatch {
	switch m {
	case True:
		return False
	case False:
		return True
	case FiniteTrue:
		return FiniteFalse
	case FiniteFalse:
		return FiniteTrue
	default:
		return m
	}
}

func minMatch(a, b TypeMatch) TypeMatch {
	if a < b {
		return a
	}
	return b
}

func maxMatch(a, b TypeMatch) TypeMatch {
	if a > b {
		return a
	}
	return b
}

// reduceMatch combines two per-field matches covariantly: None
// short-circuits, otherwise the weaker of the two wins. This realizes
// §4.2's reduceMatch(a,b) for the binary case (arguments, return; key,
// value).
func reduceMatch(a, b TypeMatch) TypeMatch {
	if a == None || b == None {
		return None
	}
	return minMatch(a, b)
}

// reduceMatchList folds reduceMatch across a sequence, starting from Equal
// (the identity for min), matching §4.2's "min across pairwise covariant
// matches starting from Equal".
func reduceMatchList(matches []TypeMatch) TypeMatch {
	result := Equal
	for _, m := range matches {
		if m == None {
			return None
		}
		result = minMatch(result, m)
	}
	return result
}

// Variance controls which side of a TypeBound comparison is consulted
// first, and how a converse fallback is applied on Unknown.
type Variance int

const (
	Covariant Variance = iota
	Contravariant
	Invariant
	// Ultravariant is reserved by the source spec with no defined
	// semantics; per the open question in §9 we treat it as Invariant.
	Ultravariant
)

// TypeBound pairs a type with a variance, used for subtyping checks.
type TypeBound struct {
	Type     *Type
	Variance Variance
}

// MatchBound applies a TypeBound's variance rule (§4.2).
func MatchBound(b TypeBound, t *Type) TypeMatch {
	switch b.Variance {
	case Covariant:
		m := Match(b.Type, t)
		if m == Unknown {
			m = converse(Match(t, b.Type))
		}
		return m
	case Contravariant:
		m := Match(t, b.Type)
		if m == Unknown {
			m = converse(Match(b.Type, t))
		}
		return m
	default: // Invariant, Ultravariant
		m := Match(b.Type, t)
		if m == Unknown {
			if alt := converse(Match(t, b.Type)); alt != Unknown {
				return alt
			}
			if alt := Match(t, b.Type); alt > m {
				return alt
			}
		}
		return m
	}
}

// MatchesBound reports whether t satisfies the bound (>= True).
func MatchesBound(b TypeBound, t *Type) bool { return MatchBound(b, t).Matches() }

// Match implements the §4.2 match relation: match(matcher, t) -> TypeMatch.
func Match(matcher, t *Type) TypeMatch {
	if matcher == t {
		return Equal
	}

	result := matchByKind(matcher, t)
	if result > AlmostEqual {
		result = AlmostEqual
	}
	if result == None {
		return None
	}

	folded := result
	matcher.Properties().Each(func(p Property) {
		if folded == None || p.Tag.TypeMatcher == nil {
			return
		}
		folded = minMatch(folded, p.Tag.TypeMatcher(t, p.Args))
	})
	return folded
}

func matchByKind(matcher, t *Type) TypeMatch {
	if matcher.kind.IsConcrete() {
		if !t.kind.IsConcrete() {
			return Unknown
		}
		if t.kind != matcher.kind {
			return None
		}
		if matcher.kind.IsAtomic() {
			return AlmostEqual
		}
		return structuralMatch(matcher, t)
	}

	switch matcher.kind {
	case TypeAny:
		return True
	case TypeNone:
		return Unknown
	case TypeUnion:
		return unionMatch(matcher, t)
	case TypeIntersection:
		return intersectionMatch(matcher, t)
	case TypeNot:
		return converse(Match(matcher.inner, t))
	case TypeBaseType:
		if t.kind == matcher.baseKind {
			return True
		}
		return False
	case TypeWithProperty:
		present := FiniteFalse
		if t.Properties().Has(matcher.tag) {
			present = AlmostEqual
		}
		return reduceMatch(present, Match(matcher.inner, t))
	case TypeCustomMatcher:
		if matcher.typeMatcher == nil {
			return None
		}
		return matcher.typeMatcher(t)
	default:
		return Unknown
	}
}

func unionMatch(matcher, t *Type) TypeMatch {
	max := Unknown
	for i := range matcher.operands {
		if m := Match(&matcher.operands[i], t); m > max {
			max = m
		}
	}
	if max > FiniteTrue {
		max = FiniteTrue
	}
	return max
}

func intersectionMatch(matcher, t *Type) TypeMatch {
	min := Equal
	for i := range matcher.operands {
		if m := Match(&matcher.operands[i], t); m < min {
			min = m
		}
	}
	if min < FiniteFalse {
		min = FiniteFalse
	}
	return min
}

func structuralMatch(matcher, t *Type) TypeMatch {
	switch matcher.kind {
	case TypeReference, TypeList, TypeSet, TypeType:
		return Match(matcher.inner, t.inner)
	case TypeFunction:
		argMatch := MatchBound(TypeBound{matcher.arguments, Contravariant}, t.arguments)
		retMatch := Match(matcher.returnType, t.returnType)
		return reduceMatch(argMatch, retMatch)
	case TypeTable:
		return reduceMatch(Match(matcher.key, t.key), Match(matcher.value, t.value))
	case TypeTuple:
		return tupleMatch(matcher, t)
	case TypeComposite:
		return compositeMatch(matcher, t)
	default:
		return AlmostEqual
	}
}

// tupleMatch resolves the varargs open question per SPEC_FULL.md §3: a
// fixed side can only meet a variadic side if the variadic tail type is
// Any and the fixed side has at least as many elements as the variadic
// side's required prefix, in which case the fixed side's extra positions
// are treated as trivially covariant; otherwise a fixed/variadic mismatch
// is None.
func tupleMatch(matcher, t *Type) TypeMatch {
	mEls, tEls := matcher.elements, t.elements
	mv, tv := matcher.varargs, t.varargs

	if mv == nil && tv == nil {
		if len(mEls) != len(tEls) {
			return None
		}
		matches := make([]TypeMatch, len(mEls))
		for i := range mEls {
			matches[i] = Match(&mEls[i], &tEls[i])
		}
		return reduceMatchList(matches)
	}

	if (mv == nil) != (tv == nil) {
		variadicSide := mv
		fixedEls, variadicEls := tEls, mEls
		if variadicSide == nil {
			variadicSide = tv
			fixedEls, variadicEls = mEls, tEls
		}
		if variadicSide.kind != TypeAny || len(fixedEls) < len(variadicEls) {
			return None
		}
		n := len(mEls)
		if len(tEls) < n {
			n = len(tEls)
		}
		matches := make([]TypeMatch, n)
		for i := 0; i < n; i++ {
			matches[i] = Match(&mEls[i], &tEls[i])
		}
		result := reduceMatchList(matches)
		if result > True {
			result = True
		}
		return result
	}

	// Both variadic.
	n := len(mEls)
	if len(tEls) < n {
		n = len(tEls)
	}
	matches := make([]TypeMatch, 0, n+1)
	for i := 0; i < n; i++ {
		matches = append(matches, Match(&mEls[i], &tEls[i]))
	}
	matches = append(matches, Match(mv, tv))
	if len(mEls) > len(tEls) {
		for i := len(tEls); i < len(mEls); i++ {
			matches = append(matches, Match(&mEls[i], tv))
		}
	} else if len(tEls) > len(mEls) {
		for i := len(mEls); i < len(tEls); i++ {
			matches = append(matches, Match(mv, &tEls[i]))
		}
	}
	return reduceMatchList(matches)
}

func compositeMatch(matcher, t *Type) TypeMatch {
	if len(matcher.fields) != len(t.fields) {
		return None
	}
	matches := make([]TypeMatch, 0, len(matcher.fields))
	for name, mt := range matcher.fields {
		tt, ok := t.fields[name]
		if !ok {
			return None
		}
		mtCopy, ttCopy := mt, tt
		matches = append(matches, Match(&mtCopy, &ttCopy))
	}
	return reduceMatchList(matches)
}

// Compare orders two types via the asymmetry of their mutual matches.
func Compare(t1, t2 *Type) int {
	return int(Match(t1, t2)) - int(Match(t2, t1))
}

// CommonType returns whichever of a, b is the supertype per Compare; if
// neither dominates, it returns their Union.
func CommonType(a, b *Type) *Type {
	c := Compare(a, b)
	switch {
	case c == 0 && Match(a, b) == Equal:
		return a
	case c > 0:
		return a
	case c < 0:
		return b
	default:
		return UnionOf(*a, *b)
	}
}
