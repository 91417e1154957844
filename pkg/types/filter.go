package types

import "sort"

// Filter is a single toggleable flag of the control panel.
type Filter string

// General filters and sort flags
const (
	FilterLiked          Filter = "liked"
	FilterNameDescending Filter = "name_desc"
	FilterNameAscending  Filter = "name_asc"
	FilterUnderground    Filter = "underground"
)

// FilterCategory groups flags that are OR-ed together when applied.
type FilterCategory string

const (
	CategoryGeneral    FilterCategory = "Filter"
	CategoryExpansion  FilterCategory = "Expansion"
	CategorySize       FilterCategory = "Map size"
	CategoryDifficulty FilterCategory = "Difficulty"
	CategoryVictory    FilterCategory = "Win conditions"
	CategoryLoss       FilterCategory = "Lose conditions"
)

// FilterCategories lists the categories in control panel order.
var FilterCategories = []FilterCategory{
	CategoryGeneral,
	CategoryExpansion,
	CategorySize,
	CategoryDifficulty,
	CategoryVictory,
	CategoryLoss,
}

// FilterOption describes how a flag is presented in a control panel.
type FilterOption struct {
	Flag     Filter
	Label    string
	Category FilterCategory
}

// ExpansionFilter returns the flag that selects maps of the given expansion.
func ExpansionFilter(e Expansion) Filter { return Filter("expansion:" + string(e)) }

// SizeFilter returns the flag that selects maps of the given size.
func SizeFilter(s SizeClass) Filter { return Filter("size:" + string(s)) }

// DifficultyFilter returns the flag that selects maps of the given difficulty.
func DifficultyFilter(d Difficulty) Filter { return Filter("difficulty:" + string(d)) }

// VictoryFilter returns the flag that selects maps with the given win condition.
func VictoryFilter(v Victory) Filter { return Filter("victory:" + string(v)) }

// LossFilter returns the flag that selects maps with the given lose condition.
func LossFilter(l Loss) Filter { return Filter("loss:" + string(l)) }

// FilterOptions lists every flag in control panel order.
var FilterOptions = []FilterOption{
	{FilterLiked, "Liked", CategoryGeneral},
	{FilterNameDescending, "Name descending", CategoryGeneral},
	{FilterNameAscending, "Name ascending", CategoryGeneral},
	{FilterUnderground, "Subterranean", CategoryGeneral},

	{ExpansionFilter(ExpansionRoE), "Restoration of Erathia", CategoryExpansion},
	{ExpansionFilter(ExpansionAB), "Armageddon's Blade", CategoryExpansion},
	{ExpansionFilter(ExpansionSoD), "Shadow of Death", CategoryExpansion},
	{ExpansionFilter(ExpansionHotA), "Horn of the Abyss", CategoryExpansion},

	{SizeFilter(SizeSmall), "S", CategorySize},
	{SizeFilter(SizeMedium), "M", CategorySize},
	{SizeFilter(SizeLarge), "L", CategorySize},
	{SizeFilter(SizeExtraLarge), "XL", CategorySize},
	{SizeFilter(SizeHuge), "H", CategorySize},
	{SizeFilter(SizeExtraHuge), "XH", CategorySize},
	{SizeFilter(SizeGiant), "G", CategorySize},

	{DifficultyFilter(DifficultyEasy), "Easy", CategoryDifficulty},
	{DifficultyFilter(DifficultyNormal), "Normal", CategoryDifficulty},
	{DifficultyFilter(DifficultyHard), "Hard", CategoryDifficulty},
	{DifficultyFilter(DifficultyExpert), "Expert", CategoryDifficulty},
	{DifficultyFilter(DifficultyImpossible), "Impossible", CategoryDifficulty},

	{VictoryFilter(VictoryAcquireArtifact), "Acquire specific Artifact", CategoryVictory},
	{VictoryFilter(VictoryDefeatMonster), "Defeat specific Monster", CategoryVictory},
	{VictoryFilter(VictorySurvive), "Survive certain time", CategoryVictory},
	{VictoryFilter(VictoryStandard), "Standard", CategoryVictory},
	{VictoryFilter(VictoryBuildGrail), "Build Grail structure", CategoryVictory},
	{VictoryFilter(VictoryEliminateMonsters), "Eliminate all Monsters", CategoryVictory},
	{VictoryFilter(VictoryTransportArtifact), "Transport specific Artifact", CategoryVictory},
	{VictoryFilter(VictoryAccumulateCreatures), "Accumulate Creatures", CategoryVictory},
	{VictoryFilter(VictoryCaptureTown), "Capture specific Town", CategoryVictory},
	{VictoryFilter(VictoryFlagDwellings), "Flag all creature Dwellings", CategoryVictory},
	{VictoryFilter(VictoryUpgradeTown), "Upgrade specific Town", CategoryVictory},
	{VictoryFilter(VictoryAccumulateResources), "Accumulate resources", CategoryVictory},
	{VictoryFilter(VictoryDefeatHero), "Defeat specific Hero", CategoryVictory},
	{VictoryFilter(VictoryFlagMines), "Flag all mines", CategoryVictory},

	{LossFilter(LossNone), "None", CategoryLoss},
	{LossFilter(LossHero), "Lose specific Hero", CategoryLoss},
	{LossFilter(LossTown), "Lose specific Town", CategoryLoss},
	{LossFilter(LossTimeExpires), "Time Expires", CategoryLoss},
}

var filterIndex = func() map[Filter]FilterOption {
	idx := make(map[Filter]FilterOption, len(FilterOptions))
	for _, opt := range FilterOptions {
		idx[opt.Flag] = opt
	}
	return idx
}()

// LookupFilter returns the option for a flag and whether the flag is known.
func LookupFilter(f Filter) (FilterOption, bool) {
	opt, ok := filterIndex[f]
	return opt, ok
}

// Filters is the set of active flags.
type Filters map[Filter]bool

// Active reports whether the flag is set
func (f Filters) Active(flag Filter) bool {
	return f[flag]
}

// Clone returns an independent copy of the set
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		if v {
			out[k] = true
		}
	}
	return out
}

// List returns the active flags in sorted order.
func (f Filters) List() []Filter {
	out := make([]Filter, 0, len(f))
	for k, v := range f {
		if v {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
