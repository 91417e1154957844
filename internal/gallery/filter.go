package gallery

import (
	"sort"
	"strings"

	"mapgallery/pkg/types"
)

// ApplyFilters returns the entries that pass the active flags, sorted when a
// name sort flag is set. Within a category an entry passes if it matches any
// active flag; categories combine with AND. Name descending wins over
// ascending when both are set. The input slice is not modified.
func ApplyFilters(entries []types.ImageEntry, filters types.Filters) []types.ImageEntry {
	active := make(map[types.FilterCategory][]types.Filter)
	for _, flag := range filters.List() {
		opt, ok := types.LookupFilter(flag)
		if !ok || opt.Category == types.CategoryGeneral {
			continue
		}
		active[opt.Category] = append(active[opt.Category], flag)
	}

	out := make([]types.ImageEntry, 0, len(entries))
	for _, e := range entries {
		if filters.Active(types.FilterLiked) && !e.Liked {
			continue
		}
		if filters.Active(types.FilterUnderground) && !e.Meta.Underground {
			continue
		}
		if !matchesAll(e.Meta, active) {
			continue
		}
		out = append(out, e)
	}

	switch {
	case filters.Active(types.FilterNameDescending):
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name)
		})
	case filters.Active(types.FilterNameAscending):
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

func matchesAll(m types.MapMeta, active map[types.FilterCategory][]types.Filter) bool {
	for _, flags := range active {
		if !matchesAny(m, flags) {
			return false
		}
	}
	return true
}

func matchesAny(m types.MapMeta, flags []types.Filter) bool {
	have := metaFlags(m)
	for _, f := range flags {
		if have[f] {
			return true
		}
	}
	return false
}

// metaFlags lists the category flags a map satisfies.
func metaFlags(m types.MapMeta) map[types.Filter]bool {
	have := make(map[types.Filter]bool)
	if m.Expansion != "" {
		have[types.ExpansionFilter(m.Expansion)] = true
	}
	if m.Size != "" {
		have[types.SizeFilter(m.Size)] = true
	}
	if m.Difficulty != "" {
		have[types.DifficultyFilter(m.Difficulty)] = true
	}
	for _, v := range m.Victory {
		have[types.VictoryFilter(v)] = true
	}
	for _, l := range m.Loss {
		have[types.LossFilter(l)] = true
	}
	return have
}
