package lattice

import "github.com/fluxenvelope/fea/halfspace"

// combinations yields every k-element subset of items, in the order
// itertools.combinations would produce them, used by addNode to enumerate
// a face's potential (|face|-1)-halfspace parents.
func combinations(items []*halfspace.Halfspace, k int) [][]*halfspace.Halfspace {
	n := len(items)
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]*halfspace.Halfspace{{}}
	}
	var out [][]*halfspace.Halfspace
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]*halfspace.Halfspace, k)
		for i, j := range idx {
			combo[i] = items[j]
		}
		out = append(out, combo)

		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
