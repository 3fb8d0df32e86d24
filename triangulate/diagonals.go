package triangulate

import "sort"

// Point ids in sweep order for the given direction.
func (data *PolygonData) SweepOrder(direction SweepDirection) []int {
	order := make([]int, len(data.Points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return Above(direction.view(data.Pos(order[i])), direction.view(data.Pos(order[j])))
	})
	return order
}

// Run one sweep and return the diagonals it adds.
//
// Only split vertices produce a diagonal here. A merge vertex only records
// itself as a helper; in the opposite sweep it is a split vertex, and it gets
// its diagonal there. Running both sweeps and taking the union of their
// diagonals therefore resolves every split and merge vertex.
func CalculateDiagonals(data *PolygonData, direction SweepDirection) []Diagonal {
	status := NewStatusHelper(data, direction)
	var diagonals []Diagonal

	for _, id := range data.SweepOrder(direction) {
		point := data.Points[id]
		switch data.Classify(id, direction) {
		case Start:
			status.Add(point.EdgeTwo, id)
		case Stop:
			status.Remove(point.EdgeOne)
		case Split:
			entry := status.SearchLeft(id)
			if entry == nil {
				fatalf("no edge left of split vertex %d (%v) in %s sweep", point.Index, point.P, direction)
			}
			diagonals = append(diagonals, newDiagonal(entry.Helper, id))
			entry.Helper = id
			status.Add(point.EdgeTwo, id)
		case Merge:
			status.Remove(point.EdgeOne)
			entry := status.SearchLeft(id)
			if entry == nil {
				fatalf("no edge left of merge vertex %d (%v) in %s sweep", point.Index, point.P, direction)
			}
			entry.Helper = id
		case Regular:
			if data.interiorIsRight(id, direction) {
				status.Remove(point.EdgeOne)
				status.Add(point.EdgeTwo, id)
			} else {
				entry := status.SearchLeft(id)
				if entry == nil {
					fatalf("no edge left of regular vertex %d (%v) in %s sweep", point.Index, point.P, direction)
				}
				entry.Helper = id
			}
		}
	}

	if status.Len() != 0 {
		fatalf("sweep finished with edges left in the status: %s", status)
	}
	return diagonals
}

// Both sweeps, with duplicates removed. Diagonals come back in the order they
// were first found.
func CalculateAllDiagonals(data *PolygonData) []Diagonal {
	seen := make(map[Diagonal]struct{})
	var result []Diagonal
	for _, direction := range []SweepDirection{SweepDown, SweepUp} {
		for _, diagonal := range CalculateDiagonals(data, direction) {
			if _, ok := seen[diagonal]; ok {
				continue
			}
			seen[diagonal] = struct{}{}
			result = append(result, diagonal)
		}
	}
	return result
}
