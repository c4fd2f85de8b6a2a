package diag

import (
	"testing"

	"ave/internal/source"
)

func TestCodeKinds(t *testing.T) {
	cases := []struct {
		code Code
		want Kind
	}{
		{LexUnterminatedString, KindSyntaxError},
		{LexInconsistentDedent, KindSyntaxError},
		{SynUnexpectedToken, KindSyntaxError},
		{SynInvalidAssignTarget, KindSyntaxError},
		{SemaCannotAssign, KindTypeError},
		{SemaNoSuchField, KindTypeError},
		{RefUndefined, KindReferenceError},
		{RefUnknownType, KindReferenceError},
	}
	for _, tc := range cases {
		if got := tc.code.Kind(); got != tc.want {
			t.Errorf("%s.Kind() = %s, want %s", tc.code.ID(), got, tc.want)
		}
	}
}

func TestCodeID(t *testing.T) {
	if got := SemaCannotAssign.ID(); got != "AVE3001" {
		t.Errorf("ID() = %q, want AVE3001", got)
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 5; i++ {
		bag.Add(NewError(SynUnexpectedToken, source.Span{}, "boom"))
	}
	if bag.Len() != 2 {
		t.Errorf("bag must cap at 2, got %d", bag.Len())
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(SemaCannotAssign, source.Span{Start: 30, End: 31}, "late"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 5, End: 6}, "early"))
	bag.Add(New(SevWarning, LexInfo, source.Span{Start: 5, End: 6}, "warn"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "early" {
		t.Errorf("first item %q, want the earliest error", items[0].Message)
	}
	if items[1].Message != "warn" {
		t.Errorf("equal spans order by severity desc, got %q", items[1].Message)
	}
	if items[2].Message != "late" {
		t.Errorf("last item %q, want the latest span", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{Start: 1, End: 2}
	bag.Add(NewError(SynUnexpectedToken, sp, "dup"))
	bag.Add(NewError(SynUnexpectedToken, sp, "dup"))
	bag.Add(NewError(SynExpectExpression, sp, "other"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("dedup left %d items, want 2", bag.Len())
	}
}

func TestHasErrors(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, LexInfo, source.Span{}, "warn"))
	if bag.HasErrors() {
		t.Error("warnings are not errors")
	}
	if !bag.HasWarnings() {
		t.Error("warning must be visible")
	}
	bag.Add(NewError(SemaCannotAssign, source.Span{}, "err"))
	if !bag.HasErrors() {
		t.Error("error must set HasErrors")
	}
}
