package source

import "testing"

func TestSpanOverlaps(t *testing.T) {
	a := Span{File: 1, Start: 2, End: 5}
	tests := []struct {
		other Span
		want  bool
	}{
		{Span{File: 1, Start: 4, End: 8}, true},
		{Span{File: 1, Start: 0, End: 3}, true},
		{Span{File: 1, Start: 5, End: 7}, false}, // полуинтервал: End не входит
		{Span{File: 1, Start: 0, End: 2}, false},
		{Span{File: 2, Start: 2, End: 5}, false},
		{Span{File: 1, Start: 3, End: 3}, false}, // пустой ничего не покрывает
	}
	for _, tt := range tests {
		if got := a.Overlaps(tt.other); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", a, tt.other, got, tt.want)
		}
	}
}

func TestSpanTailAndOrder(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	tail := s.Tail()
	if !tail.Empty() || tail.Start != 9 || tail.File != 3 {
		t.Fatalf("Tail() = %v", tail)
	}
	if !s.Before(tail) || tail.Before(s) {
		t.Fatal("span must order before its own tail")
	}
	if !(Span{File: 1, Start: 50}).Before(Span{File: 2}) {
		t.Fatal("spans of different files order by file ID")
	}
	if got := s.String(); got != "#3[4:9)" {
		t.Fatalf("String() = %q", got)
	}
}
