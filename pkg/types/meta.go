package types

// Expansion identifies the game release a map requires.
type Expansion string

const (
	ExpansionRoE  Expansion = "roe"  // Restoration of Erathia
	ExpansionAB   Expansion = "ab"   // Armageddon's Blade
	ExpansionSoD  Expansion = "sod"  // Shadow of Death
	ExpansionHotA Expansion = "hota" // Horn of the Abyss
)

// SizeClass is the map size as shown in the scenario list.
type SizeClass string

const (
	SizeSmall      SizeClass = "s"
	SizeMedium     SizeClass = "m"
	SizeLarge      SizeClass = "l"
	SizeExtraLarge SizeClass = "xl"
	SizeHuge       SizeClass = "h"
	SizeExtraHuge  SizeClass = "xh"
	SizeGiant      SizeClass = "g"
)

// Difficulty is the suggested map difficulty.
type Difficulty string

const (
	DifficultyEasy       Difficulty = "easy"
	DifficultyNormal     Difficulty = "normal"
	DifficultyHard       Difficulty = "hard"
	DifficultyExpert     Difficulty = "expert"
	DifficultyImpossible Difficulty = "impossible"
)

// Victory is a special win condition.
type Victory string

const (
	VictoryStandard            Victory = "standard"
	VictoryAcquireArtifact     Victory = "acquire_artifact"
	VictoryAccumulateCreatures Victory = "accumulate_creatures"
	VictoryAccumulateResources Victory = "accumulate_resources"
	VictoryUpgradeTown         Victory = "upgrade_town"
	VictoryBuildGrail          Victory = "build_grail"
	VictoryDefeatHero          Victory = "defeat_hero"
	VictoryCaptureTown         Victory = "capture_town"
	VictoryDefeatMonster       Victory = "defeat_monster"
	VictoryFlagDwellings       Victory = "flag_dwellings"
	VictoryFlagMines           Victory = "flag_mines"
	VictoryTransportArtifact   Victory = "transport_artifact"
	VictoryEliminateMonsters   Victory = "eliminate_monsters"
	VictorySurvive             Victory = "survive"
)

// Loss is a special lose condition.
type Loss string

const (
	LossNone        Loss = "none"
	LossTown        Loss = "lose_town"
	LossHero        Loss = "lose_hero"
	LossTimeExpires Loss = "time_expires"
)

// MapMeta holds the scenario properties a preview image can be filtered by.
// All fields are optional; an image without a manifest entry has a zero MapMeta.
type MapMeta struct {
	Expansion   Expansion  `yaml:"expansion,omitempty"`
	Size        SizeClass  `yaml:"size,omitempty"`
	Difficulty  Difficulty `yaml:"difficulty,omitempty"`
	Underground bool       `yaml:"underground,omitempty"`
	Victory     []Victory  `yaml:"victory,omitempty"`
	Loss        []Loss     `yaml:"loss,omitempty"`
}

// IsZero reports whether no metadata is known.
func (m MapMeta) IsZero() bool {
	return m.Expansion == "" && m.Size == "" && m.Difficulty == "" &&
		!m.Underground && len(m.Victory) == 0 && len(m.Loss) == 0
}
