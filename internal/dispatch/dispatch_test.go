package dispatch

import (
	"errors"
	"testing"

	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/rt"
)

func TestSelect_MoreSpecificCandidateWins(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []rt.Type{*rt.AnyType}},
		{ArgTypes: []rt.Type{*rt.IntegerType}},
	}
	winner, err := Select(candidates, []rt.Type{*rt.IntegerType}, "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner != 1 {
		t.Fatalf("winner = %d, want 1 (the Integer-specific candidate)", winner)
	}
}

func TestSelect_PartiallySpecificCandidateBeatsAllAny(t *testing.T) {
	// foo(x: Int, y) vs foo(x, y), called as foo(3, 4). Both candidates
	// score True (position 0's higher AlmostEqual isn't the binding
	// position, since position 1 is Any on both), so the winner is
	// decided entirely by specificity comparison, not by score: (Int,
	// Any) must win over (Any, Any).
	candidates := []Candidate{
		{ArgTypes: []rt.Type{*rt.IntegerType, *rt.AnyType}},
		{ArgTypes: []rt.Type{*rt.AnyType, *rt.AnyType}},
	}
	winner, err := Select(candidates, []rt.Type{*rt.IntegerType, *rt.IntegerType}, "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner != 0 {
		t.Fatalf("winner = %d, want 0 ((Int, Any) is strictly more specific than (Any, Any))", winner)
	}
}

func TestSelect_KindMismatchEliminatesCandidate(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []rt.Type{*rt.FloatType}},
		{ArgTypes: []rt.Type{*rt.AnyType}},
	}
	winner, err := Select(candidates, []rt.Type{*rt.IntegerType}, "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner != 1 {
		t.Fatalf("winner = %d, want 1 (the Any fallback, Float eliminated by kind mismatch)", winner)
	}
}

func TestSelect_ArityMismatchEliminatesCandidate(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []rt.Type{*rt.IntegerType, *rt.IntegerType}},
		{ArgTypes: []rt.Type{*rt.IntegerType}},
	}
	winner, err := Select(candidates, []rt.Type{*rt.IntegerType}, "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner != 1 {
		t.Fatalf("winner = %d, want 1 (only candidate with matching arity)", winner)
	}
}

func TestSelect_NoSurvivorsIsNoOverloadFound(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []rt.Type{*rt.FloatType}},
		{ArgTypes: []rt.Type{*rt.StringType}},
	}
	_, err := Select(candidates, []rt.Type{*rt.IntegerType}, "foo")
	var nf *errs.NoOverloadFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *errs.NoOverloadFoundError, got %T: %v", err, err)
	}
}

func TestSelect_TiesBreakByDeclarationOrder(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []rt.Type{*rt.IntegerType}},
		{ArgTypes: []rt.Type{*rt.IntegerType}},
	}
	winner, err := Select(candidates, []rt.Type{*rt.IntegerType}, "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner != 0 {
		t.Fatalf("winner = %d, want 0 (first-declared wins an exact tie)", winner)
	}
}

func TestSelect_IncomparableSpecificityIsNoOverloadFound(t *testing.T) {
	// (Int, Any) and (Any, Int) both reduce to a min score of True against
	// (Int, Int), but neither declared tuple is componentwise <= the
	// other: the first is more specific in position 0, the second in
	// position 1. Dispatch must refuse to pick one over the other.
	candidates := []Candidate{
		{ArgTypes: []rt.Type{*rt.IntegerType, *rt.AnyType}},
		{ArgTypes: []rt.Type{*rt.AnyType, *rt.IntegerType}},
	}
	_, err := Select(candidates, []rt.Type{*rt.IntegerType, *rt.IntegerType}, "foo")
	var nf *errs.NoOverloadFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *errs.NoOverloadFoundError, got %T: %v", err, err)
	}
}

func TestSelect_ComparableTieAmongThreeStillPicksDominant(t *testing.T) {
	// Each candidate keeps exactly one Any position, so all three tie at
	// score True against (Int, Int, Int) (the remaining Any position
	// anchors the per-candidate min), while narrowing a different prefix
	// of positions from Any to Int declares an unambiguous three-way
	// specificity chain: (Any,Any,Any) < (Int,Any,Any) < (Int,Int,Any).
	// The most specific candidate is declared last, so a winner of 0 or 1
	// would mean the fold stopped at "first declared" instead of finding
	// the actual dominant tied candidate.
	candidates := []Candidate{
		{ArgTypes: []rt.Type{*rt.AnyType, *rt.AnyType, *rt.AnyType}},
		{ArgTypes: []rt.Type{*rt.IntegerType, *rt.AnyType, *rt.AnyType}},
		{ArgTypes: []rt.Type{*rt.IntegerType, *rt.IntegerType, *rt.AnyType}},
	}
	winner, err := Select(candidates, []rt.Type{*rt.IntegerType, *rt.IntegerType, *rt.IntegerType}, "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner != 2 {
		t.Fatalf("winner = %d, want 2 ((Int, Int, Any), the most specific of the tied candidates)", winner)
	}
}

func TestSelect_StableAcrossRepeatedCalls(t *testing.T) {
	candidates := []Candidate{
		{ArgTypes: []rt.Type{*rt.AnyType}},
		{ArgTypes: []rt.Type{*rt.IntegerType}},
	}
	argTypes := []rt.Type{*rt.IntegerType}
	first, err := Select(candidates, argTypes, "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := Select(candidates, argTypes, "foo")
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if got != first {
			t.Fatalf("Select drifted on call %d: got %d, want %d", i, got, first)
		}
	}
}
