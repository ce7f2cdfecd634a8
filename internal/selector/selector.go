// Package selector chooses which PossibleMutations a run applies: how many,
// which indices, how groups and synced permutations expand, and how the
// final sequence is ordered and partitioned by negation.
package selector

import (
	"sort"

	"github.com/rowmut/rowmut/internal/chacharng"
	"github.com/rowmut/rowmut/internal/model"
	"github.com/rowmut/rowmut/pkg/orderedset"
)

// CountConfig mirrors the CLI's count-related flags: at most one of Count or
// {MinCount, MaxCount} is expected to be set; validating that mutual
// exclusion is the CLI layer's job (cmd/mutate.go), not this package's.
type CountConfig struct {
	Count    *int
	MinCount *int
	MaxCount *int
}

// ResolveCount determines how many mutations to select out of total
// candidates. If Count is set it is clamped to total, with clamped=true
// reported so the caller can warn. Otherwise a bounded random draw is made
// from the RNG stream using MinCount/MaxCount (defaulting to 1 and
// total+1).
func ResolveCount(cfg CountConfig, total int, rng *chacharng.State) (count int, clamped bool) {
	if cfg.Count != nil {
		c := *cfg.Count
		if c < 0 {
			c = 0
		}

		if c > total {
			return total, true
		}

		return c, false
	}

	lo := 1
	if cfg.MinCount != nil {
		lo = *cfg.MinCount
	}

	hi := total + 1
	if cfg.MaxCount != nil {
		hi = *cfg.MaxCount
	}

	if lo >= hi {
		return 0, false
	}

	return int(rng.Bounded(uint32(lo), uint32(hi))), false
}

// Select performs index sampling, group/nesting/synced expansion, negation
// partitioning, and final descending-line ordering. pms is mutated in
// place: each chosen row's GroupNumber is assigned during expansion.
func Select(pms []model.PossibleMutation, count int, rng *chacharng.State) []model.SelectedMutation {
	if count <= 0 || len(pms) == 0 {
		return nil
	}

	indices := sampleIndices(count, len(pms), rng)

	leaderPermIndex := make(map[int]int)
	nextGroupNumber := 0

	var selected []model.SelectedMutation

	for _, i := range indices {
		if pms[i].Flags.GroupNumber > 0 {
			continue
		}

		if pms[i].Flags.Depth == 0 {
			j := int(rng.Bounded(0, uint32(len(pms[i].Permutations))))
			selected = append(selected, emit(&pms[i], j))

			continue
		}

		leaderIdx := findLeaderIndex(pms, i)
		leader := &pms[leaderIdx]

		if leader.Flags.GroupNumber > 0 {
			g := leader.Flags.GroupNumber
			selected = attachToGroup(pms, i, g, leaderPermIndex[g], rng, selected)

			continue
		}

		nextGroupNumber++
		g := nextGroupNumber

		leaderJ := int(rng.Bounded(0, uint32(len(leader.Permutations))))
		leaderPermIndex[g] = leaderJ
		leader.Flags.GroupNumber = g
		selected = append(selected, emit(leader, leaderJ))

		selected = expandGroupDownward(pms, leaderIdx, g, leaderJ, rng, selected)

		if leaderIdx != i && pms[i].Flags.GroupNumber == 0 {
			selected = attachToGroup(pms, i, g, leaderJ, rng, selected)
		}
	}

	selected = partitionNegation(selected)
	sortDescendingByLine(selected)

	return selected
}

func sampleIndices(count, total int, rng *chacharng.State) []int {
	set := orderedset.New[int]()

	for set.Len() < count {
		set.Insert(int(rng.Bounded(0, uint32(total))))
	}

	return set.Slice()
}

func findLeaderIndex(pms []model.PossibleMutation, i int) int {
	for pms[i].Flags.Depth != 1 {
		i--
	}

	return i
}

func saturate(idx, n int) int {
	if idx > n-1 {
		return n - 1
	}

	return idx
}

func emit(pm *model.PossibleMutation, permIdx int) model.SelectedMutation {
	permIdx = saturate(permIdx, len(pm.Permutations))

	return model.SelectedMutation{
		Pattern:     pm.Pattern,
		Replacement: pm.Permutations[permIdx],
		Flags:       pm.Flags,
	}
}

// groupedSelect assigns pm to group g and picks its permutation: the
// leader's saturated index if pm is synced, else a fresh random draw.
func groupedSelect(pm *model.PossibleMutation, g, leaderPermIdx int, rng *chacharng.State) model.SelectedMutation {
	pm.Flags.GroupNumber = g

	if pm.Flags.IsIndexSynced {
		return emit(pm, leaderPermIdx)
	}

	j := int(rng.Bounded(0, uint32(len(pm.Permutations))))

	return emit(pm, j)
}

// expandGroupDownward walks every row directly below the leader while its
// depth stays above 1, applying the "ok-to-add" rule: resume emitting at
// every depth-2 sibling, suppress the whole subtree once an optional row is
// hit until the next depth-2 sibling resets it.
func expandGroupDownward(pms []model.PossibleMutation, leaderIdx, g, leaderPermIdx int, rng *chacharng.State, selected []model.SelectedMutation) []model.SelectedMutation {
	okToAdd := true
	idx := leaderIdx

	for idx+1 < len(pms) && pms[idx+1].Flags.Depth > 1 {
		idx++

		if pms[idx].Flags.Depth == 2 {
			okToAdd = true
		}

		if pms[idx].Flags.IsOptional {
			okToAdd = false
		}

		if okToAdd {
			selected = append(selected, groupedSelect(&pms[idx], g, leaderPermIdx, rng))
		}
	}

	return selected
}

// attachToGroup handles an independently sampled index that lands on a
// nested row whose group was already expanded by an earlier index: emit
// the row itself, then pull in its ungrouped ancestors and descendants.
func attachToGroup(pms []model.PossibleMutation, i, g, leaderPermIdx int, rng *chacharng.State, selected []model.SelectedMutation) []model.SelectedMutation {
	selected = append(selected, groupedSelect(&pms[i], g, leaderPermIdx, rng))

	up := i
	for up-1 >= 0 && pms[up-1].Flags.GroupNumber == 0 && pms[up-1].Flags.Depth < pms[up].Flags.Depth {
		up--
		selected = append(selected, groupedSelect(&pms[up], g, leaderPermIdx, rng))
	}

	down := i
	for down+1 < len(pms) && pms[down+1].Flags.GroupNumber == 0 && !pms[down+1].Flags.IsOptional && pms[down+1].Flags.Depth > pms[down].Flags.Depth {
		down++
		selected = append(selected, groupedSelect(&pms[down], g, leaderPermIdx, rng))
	}

	return selected
}

// partitionNegation keeps only the rows matching the first selected row's
// MustPass bit, making a spec's `!` rows a separable negative-test suite.
func partitionNegation(selected []model.SelectedMutation) []model.SelectedMutation {
	if len(selected) == 0 {
		return selected
	}

	negatedTest := selected[0].Flags.MustPass

	out := make([]model.SelectedMutation, 0, len(selected))
	for _, sm := range selected {
		if sm.Flags.MustPass == negatedTest {
			out = append(out, sm)
		}
	}

	return out
}

func sortDescendingByLine(selected []model.SelectedMutation) {
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Flags.LineNumber > selected[j].Flags.LineNumber
	})
}
