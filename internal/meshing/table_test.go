package meshing

import (
	"sort"
	"testing"
)

func entryEdges(idx int) []int {
	tri := TriangleEdges(idx)
	var out []int
	for _, e := range tri {
		if e < 0 {
			break
		}
		out = append(out, int(e))
	}
	return out
}

func TestTriangulationKnownEntries(t *testing.T) {
	known := map[int][]int{
		0:   nil,
		1:   {0, 8, 3},
		2:   {0, 1, 9},
		3:   {1, 8, 3, 9, 8, 1},
		8:   {3, 11, 2},
		15:  {9, 8, 10, 10, 8, 11},
		16:  {4, 7, 8},
		32:  {9, 5, 4},
		51:  {1, 5, 3, 3, 5, 7},
		64:  {10, 6, 5},
		128: {7, 6, 11},
		204: {1, 3, 5, 3, 7, 5},
		240: {9, 10, 8, 10, 11, 8},
		254: {0, 3, 8},
		255: nil,
	}
	for idx, want := range known {
		got := entryEdges(idx)
		if len(got) != len(want) {
			t.Fatalf("entry %d: got %v, want %v", idx, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("entry %d: got %v, want %v", idx, got, want)
			}
		}
	}
}

func TestTriangulationSentinel(t *testing.T) {
	for idx := 0; idx < 256; idx++ {
		tri := TriangleEdges(idx)
		n := len(entryEdges(idx))
		if n > 15 {
			t.Fatalf("entry %d: %d edge refs, want at most 15", idx, n)
		}
		if n%3 != 0 {
			t.Fatalf("entry %d: %d edge refs is not a whole number of triangles", idx, n)
		}
		for i := n; i < len(tri); i++ {
			if tri[i] != -1 {
				t.Fatalf("entry %d: value %d after sentinel at %d", idx, tri[i], i)
			}
		}
	}
}

// Every referenced edge must be crossed by the configuration and every
// crossed edge must be referenced.
func TestTriangulationCrossedEdges(t *testing.T) {
	for idx := 0; idx < 256; idx++ {
		used := map[int]bool{}
		for _, e := range entryEdges(idx) {
			used[e] = true
		}
		for e := 0; e < 12; e++ {
			edge := EdgeAt(e)
			crossed := (idx>>edge.A)&1 != (idx>>edge.B)&1
			if crossed != used[e] {
				t.Fatalf("entry %d edge %d: crossed=%v referenced=%v", idx, e, crossed, used[e])
			}
		}
	}
}

func TestTriangulationComplementSymmetry(t *testing.T) {
	for idx := 0; idx < 128; idx++ {
		a := entryEdges(idx)
		b := entryEdges(255 - idx)
		ua, ub := uniq(a), uniq(b)
		if len(ua) != len(ub) {
			t.Fatalf("entry %d vs %d: edge sets %v and %v differ", idx, 255-idx, ua, ub)
		}
		for i := range ua {
			if ua[i] != ub[i] {
				t.Fatalf("entry %d vs %d: edge sets %v and %v differ", idx, 255-idx, ua, ub)
			}
		}
	}
}

func TestTriangleEdgesReturnsCopy(t *testing.T) {
	tri := TriangleEdges(1)
	tri[0] = 11
	if got := TriangleEdges(1)[0]; got != 0 {
		t.Fatalf("table mutated through returned entry: got %d, want 0", got)
	}
}

func uniq(in []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
