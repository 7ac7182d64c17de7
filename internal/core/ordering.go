package core

import "sort"

// SortPackingListItems returns items ordered for labeling: items with a
// pallet come before items without one, and items on the same pallet (or
// both without) are ordered by carton. The sort is stable and items is not
// modified.
func SortPackingListItems(items []ProcessedItem) []ProcessedItem {
	out := cloneItems(items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.HasPallet() && !b.HasPallet():
			return true
		case !a.HasPallet() && b.HasPallet():
			return false
		case a.HasPallet() && b.HasPallet() && *a.Pal != *b.Pal:
			return *a.Pal < *b.Pal
		}
		return a.Ctn < b.Ctn
	})
	return out
}

// CalculateNumberOfCtns returns items re-sorted by carton only, with the
// first item of every carton marked "1" and the other items sharing that
// carton marked "*". items is not modified.
func CalculateNumberOfCtns(items []ProcessedItem) []ProcessedItem {
	out := cloneItems(items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ctn < out[j].Ctn
	})

	current := 0
	for i := range out {
		if i == 0 || out[i].Ctn != current {
			out[i].NumberOfCtns = MarkerFirst
			current = out[i].Ctn
			continue
		}
		out[i].NumberOfCtns = MarkerRepeat
	}
	return out
}

// cloneItems copies items, including their pallet pointers.
func cloneItems(items []ProcessedItem) []ProcessedItem {
	out := make([]ProcessedItem, len(items))
	for i, it := range items {
		if it.Pal != nil {
			it.Pal = intPtr(*it.Pal)
		}
		out[i] = it
	}
	return out
}
