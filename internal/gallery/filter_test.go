package gallery

import (
	"testing"

	"mapgallery/pkg/types"

	"github.com/stretchr/testify/assert"
)

func names(es []types.ImageEntry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func sampleMaps() []types.ImageEntry {
	return []types.ImageEntry{
		{Name: "Bravo", Liked: true, Meta: types.MapMeta{
			Expansion: types.ExpansionSoD, Size: types.SizeLarge, Underground: true,
			Victory: []types.Victory{types.VictoryStandard},
		}},
		{Name: "alpha", Meta: types.MapMeta{
			Expansion: types.ExpansionRoE, Size: types.SizeSmall,
			Loss: []types.Loss{types.LossHero},
		}},
		{Name: "Charlie", Liked: true, Meta: types.MapMeta{
			Expansion: types.ExpansionAB, Size: types.SizeLarge,
		}},
		{Name: "Delta"},
	}
}

func TestApplyFiltersNoFlags(t *testing.T) {
	in := sampleMaps()
	out := ApplyFilters(in, types.Filters{})
	assert.Equal(t, names(in), names(out))
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters types.Filters
		want    []string
	}{
		{
			name:    "liked",
			filters: types.Filters{types.FilterLiked: true},
			want:    []string{"Bravo", "Charlie"},
		},
		{
			name:    "underground",
			filters: types.Filters{types.FilterUnderground: true},
			want:    []string{"Bravo"},
		},
		{
			name: "any within category",
			filters: types.Filters{
				types.ExpansionFilter(types.ExpansionRoE): true,
				types.ExpansionFilter(types.ExpansionAB):  true,
			},
			want: []string{"alpha", "Charlie"},
		},
		{
			name: "all across categories",
			filters: types.Filters{
				types.ExpansionFilter(types.ExpansionAB):  true,
				types.ExpansionFilter(types.ExpansionSoD): true,
				types.SizeFilter(types.SizeLarge):         true,
				types.FilterLiked:                         true,
			},
			want: []string{"Bravo", "Charlie"},
		},
		{
			name:    "loss condition",
			filters: types.Filters{types.LossFilter(types.LossHero): true},
			want:    []string{"alpha"},
		},
		{
			name:    "inactive flag ignored",
			filters: types.Filters{types.FilterLiked: false},
			want:    []string{"Bravo", "alpha", "Charlie", "Delta"},
		},
		{
			name:    "name ascending",
			filters: types.Filters{types.FilterNameAscending: true},
			want:    []string{"alpha", "Bravo", "Charlie", "Delta"},
		},
		{
			name:    "name descending wins",
			filters: types.Filters{types.FilterNameAscending: true, types.FilterNameDescending: true},
			want:    []string{"Delta", "Charlie", "Bravo", "alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(ApplyFilters(sampleMaps(), tt.filters)))
		})
	}
}

func TestApplyFiltersDoesNotModifyInput(t *testing.T) {
	in := sampleMaps()
	ApplyFilters(in, types.Filters{types.FilterNameAscending: true, types.FilterLiked: true})
	assert.Equal(t, []string{"Bravo", "alpha", "Charlie", "Delta"}, names(in))
}
