package geom

import "testing"

func TestSegmentIntersects(t *testing.T) {
	tests := []struct {
		name string
		s, o Segment
		want bool
	}{
		{
			name: "crossing diagonals",
			s:    Segment{Pt(0, 0), Pt(10, 10)},
			o:    Segment{Pt(0, 10), Pt(10, 0)},
			want: true,
		},
		{
			name: "parallel horizontals",
			s:    Segment{Pt(0, 0), Pt(10, 0)},
			o:    Segment{Pt(0, 5), Pt(10, 5)},
			want: false,
		},
		{
			name: "collinear overlap",
			s:    Segment{Pt(0, 0), Pt(10, 0)},
			o:    Segment{Pt(5, 0), Pt(15, 0)},
			want: true,
		},
		{
			name: "collinear disjoint",
			s:    Segment{Pt(0, 0), Pt(10, 0)},
			o:    Segment{Pt(11, 0), Pt(20, 0)},
			want: false,
		},
		{
			name: "touching endpoints",
			s:    Segment{Pt(0, 0), Pt(5, 5)},
			o:    Segment{Pt(5, 5), Pt(10, 0)},
			want: true,
		},
		{
			name: "t junction",
			s:    Segment{Pt(0, 0), Pt(10, 0)},
			o:    Segment{Pt(5, 5), Pt(5, 0)},
			want: true,
		},
		{
			name: "near miss",
			s:    Segment{Pt(0, 0), Pt(10, 0)},
			o:    Segment{Pt(5, 5), Pt(5, 0.001)},
			want: false,
		},
		{
			name: "degenerate point on segment",
			s:    Segment{Pt(3, 0), Pt(3, 0)},
			o:    Segment{Pt(0, 0), Pt(10, 0)},
			want: true,
		},
		{
			name: "degenerate point off segment",
			s:    Segment{Pt(3, 1), Pt(3, 1)},
			o:    Segment{Pt(0, 0), Pt(10, 0)},
			want: false,
		},
		{
			name: "shared origin v shape",
			s:    Segment{Pt(0, 0), Pt(5, 5)},
			o:    Segment{Pt(0, 0), Pt(-5, 5)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Intersects(tt.o); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.s, tt.o, got, tt.want)
			}
			// Intersection is symmetric.
			if got := tt.o.Intersects(tt.s); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.o, tt.s, got, tt.want)
			}
		})
	}
}

func TestSegmentLength(t *testing.T) {
	s := Segment{Pt(0, 0), Pt(3, 4)}
	if got := s.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
}
