package lattice

import (
	"container/heap"

	"github.com/fluxenvelope/fea/face"
)

// frontierItem pairs a candidate face with the insertion sequence used to
// break sort_key ties in stable (first-in) order.
type frontierItem struct {
	f       *face.Face
	seq     int
	index   int // current position in the heap, maintained by container/heap
	removed bool
}

// frontier is a priority queue of open faces ordered by Face.sort_key:
// highest level first, then highest score, ties broken by insertion
// order, grounded on LatticeGraph.py's SortedListWithKey frontier and
// expressed with the container/heap idiom of
// _examples/katalvlaran-lvlath/dijkstra/dijkstra.go's nodePQ (a max-heap
// rather than that file's min-heap, with each item's heap index tracked
// so Discard removes an arbitrary element in O(log n) via heap.Remove).
type frontier struct {
	items []*frontierItem
	index map[*face.Face]*frontierItem
	seq   int
}

func newFrontier() *frontier {
	return &frontier{index: make(map[*face.Face]*frontierItem)}
}

func (q *frontier) Len() int { return len(q.items) }

func (q *frontier) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	al, as := a.f.SortKey()
	bl, bs := b.f.SortKey()
	if al != bl {
		return al > bl // highest level first
	}
	if as != bs {
		return as < bs // highest score first (sort_key's score is negated, so the smaller value wins)
	}
	return a.seq < b.seq // stable: earliest insertion wins
}

func (q *frontier) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *frontier) Push(x interface{}) {
	item := x.(*frontierItem)
	item.index = len(q.items)
	q.items = append(q.items, item)
}

func (q *frontier) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return item
}

// Add inserts f into the frontier, or is a no-op if f is already present.
func (q *frontier) Add(f *face.Face) {
	if _, ok := q.index[f]; ok {
		return
	}
	item := &frontierItem{f: f, seq: q.seq}
	q.seq++
	q.index[f] = item
	heap.Push(q, item)
}

// Discard removes f from the frontier if present.
func (q *frontier) Discard(f *face.Face) {
	item, ok := q.index[f]
	if !ok {
		return
	}
	delete(q.index, f)
	item.removed = true
	heap.Remove(q, item.index)
}

// Peek returns the most promising face without removing it, or nil if the
// frontier is empty.
func (q *frontier) Peek() *face.Face {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0].f
}

// Empty reports whether the frontier has no open faces.
func (q *frontier) Empty() bool { return len(q.items) == 0 }
