// Package dispatch ranks Dispatch candidates by match-specificity over
// argument types (§4.6).
package dispatch

import (
	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/rt"
)

// Candidate is anything with a declared parameter-type tuple; both
// rt.DispatchTarget (runtime) and the compiler's rt.DispatchCase satisfy
// it via their ArgTypes field, but Select takes the ArgTypes slices
// directly so it has no import-order dependency on either.
type Candidate struct {
	ArgTypes []rt.Type
}

// Select scores each candidate against argTypes and returns the winning
// index. A candidate is eliminated if its arity disagrees with argTypes
// or any per-argument match fails to reach True. Surviving candidates are
// ranked by the reduceMatchList of their per-argument TypeMatch; among
// those tied on that score, the declared ArgTypes tuples are compared
// pairwise via rt.Compare — a tie only breaks by declaration order when
// one tuple is componentwise no-more-specific than the other everywhere
// (they are "comparable"); if two tied candidates disagree in direction
// across positions (e.g. (Int, Any) vs (Any, Int) against (Int, Int)),
// neither is more specific and Select reports NoOverloadFoundError, same
// as when there are zero survivors.
func Select(candidates []Candidate, argTypes []rt.Type, scopeName string) (int, error) {
	type survivor struct {
		index int
		score rt.TypeMatch
	}
	var survivors []survivor
	for i, c := range candidates {
		if len(c.ArgTypes) != len(argTypes) {
			continue
		}
		score, ok := scoreCandidate(c.ArgTypes, argTypes)
		if !ok {
			continue
		}
		survivors = append(survivors, survivor{index: i, score: score})
	}
	if len(survivors) == 0 {
		return -1, &errs.NoOverloadFoundError{ScopeName: scopeName, ArgCount: len(argTypes)}
	}

	bestScore := survivors[0].score
	for _, s := range survivors[1:] {
		if s.score > bestScore {
			bestScore = s.score
		}
	}

	tied := make([]int, 0, len(survivors))
	for _, s := range survivors {
		if s.score == bestScore {
			tied = append(tied, s.index)
		}
	}

	winner := tied[0]
	for _, idx := range tied[1:] {
		switch compareSpecificity(candidates[winner].ArgTypes, candidates[idx].ArgTypes) {
		case winnerAtLeastAsSpecific:
			// winner stays; first declared wins a genuine (comparable) tie.
		case challengerMoreSpecific:
			winner = idx
		default:
			return -1, &errs.NoOverloadFoundError{ScopeName: scopeName, ArgCount: len(argTypes)}
		}
	}
	return winner, nil
}

type specificityOrder int

const (
	incomparableSpecificity specificityOrder = iota
	winnerAtLeastAsSpecific
	challengerMoreSpecific
)

// compareSpecificity reports how a's declared ArgTypes tuple relates to
// b's. rt.Compare(x, y) > 0 means x is the more general supertype of y
// (the convention CommonType relies on); so a is more specific than b at
// a position when rt.Compare(&a[i], &b[i]) < 0. winnerAtLeastAsSpecific
// means every parameter of a is <= the corresponding parameter of b
// (rt.Compare(&a[i], &b[i]) <= 0 for all i), challengerMoreSpecific is the
// mirror image, and incomparableSpecificity means neither direction holds
// everywhere.
func compareSpecificity(a, b []rt.Type) specificityOrder {
	aAtLeastAsSpecific, bAtLeastAsSpecific := true, true
	for i := range a {
		c := rt.Compare(&a[i], &b[i])
		if c > 0 {
			aAtLeastAsSpecific = false
		}
		if c < 0 {
			bAtLeastAsSpecific = false
		}
	}
	switch {
	case aAtLeastAsSpecific:
		return winnerAtLeastAsSpecific
	case bAtLeastAsSpecific:
		return challengerMoreSpecific
	default:
		return incomparableSpecificity
	}
}

func scoreCandidate(declared, actual []rt.Type) (rt.TypeMatch, bool) {
	matches := make([]rt.TypeMatch, len(declared))
	for i := range declared {
		bound := rt.TypeBound{Type: &declared[i], Variance: rt.Covariant}
		matches[i] = rt.MatchBound(bound, &actual[i])
		if !matches[i].Matches() {
			return rt.None, false
		}
	}
	score := rt.Equal
	for _, m := range matches {
		if m < score {
			score = m
		}
	}
	return score, true
}
