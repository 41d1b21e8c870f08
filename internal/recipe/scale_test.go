package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleIngredientsIdentity(t *testing.T) {
	input := []string{"玉ねぎ 2個", "米 2合", "レタス"}

	scaled, err := ScaleIngredients(input, 4, 4)
	require.NoError(t, err)

	// Same servings means the input comes back untouched, element for element.
	assert.Equal(t, input, scaled)
}

func TestScaleIngredientsEmpty(t *testing.T) {
	scaled, err := ScaleIngredients([]string{}, 2, 4)
	require.NoError(t, err)
	assert.Empty(t, scaled)

	scaled, err = ScaleIngredients(nil, 2, 4)
	require.NoError(t, err)
	assert.Empty(t, scaled)
}

func TestScaleIngredientsInvalidBase(t *testing.T) {
	_, err := ScaleIngredients([]string{"玉ねぎ 2個"}, 0, 4)
	require.Error(t, err)

	_, err = ScaleIngredients([]string{"玉ねぎ 2個"}, -1, 4)
	require.Error(t, err)
}

func TestScaleIngredients(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		base   int
		target int
		want   string
	}{
		{"double count", "玉ねぎ 2個", 2, 4, "玉ねぎ 4個"},
		{"halve count", "玉ねぎ 2個", 4, 2, "玉ねぎ 1個"},
		{"fractional result", "卵 3個", 2, 3, "卵 4.5個"},
		{"round to one decimal", "米 2合", 3, 2, "米 1.3合"},
		{"snap near integer", "肉 3個", 3, 2, "肉 2個"},
		{"metric grams", "豚肉 300g", 2, 4, "豚肉 600g"},
		{"metric milliliters", "水 200ml", 4, 2, "水 100ml"},
		{"tablespoon", "醤油 大さじ2", 2, 4, "醤油 大さじ2"},
		{"trailing measure word", "みりん 2カップ", 2, 1, "みりん 1カップ"},
		{"fraction in parens", "豆腐（1/2丁）", 2, 4, "豆腐（1丁）"},
		{"fraction stays fractional", "豆腐（1/2丁）", 2, 3, "豆腐（0.8丁）"},
		{"decimal quantity", "塩 1.5g", 2, 4, "塩 3g"},
		{"full-width digits", "ねぎ ２本", 2, 4, "ねぎ 4本"},
		{"servings suffix", "カレールー 2人分", 2, 6, "カレールー 6人分"},
		{"no quantity passthrough", "レタス", 2, 4, "レタス"},
		{"free text passthrough", "塩こしょう 適量", 2, 4, "塩こしょう 適量"},
		{"multiple tokens", "じゃがいも 2個と人参 1本", 2, 4, "じゃがいも 4個と人参 2本"},
		{"unknown unit untouched", "お好みで 2つまみ", 2, 4, "お好みで 2つまみ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scaled, err := ScaleIngredients([]string{tt.line}, tt.base, tt.target)
			require.NoError(t, err)
			require.Len(t, scaled, 1)
			assert.Equal(t, tt.want, scaled[0])
		})
	}
}

func TestScaleIngredientsPreservesOrder(t *testing.T) {
	input := []string{"玉ねぎ 2個", "レタス", "水 400ml"}

	scaled, err := ScaleIngredients(input, 2, 4)
	require.NoError(t, err)

	assert.Equal(t, []string{"玉ねぎ 4個", "レタス", "水 800ml"}, scaled)
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{4, "4"},
		{4.5, "4.5"},
		{1.98, "2"},
		{2.04, "2"},
		{2.05, "2.1"},
		{1.3333333, "1.3"},
		{0.96, "1"},
		{0.5, "0.5"},
		{0.25, "0.3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatQuantity(tt.value), "value %v", tt.value)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2", 2, true},
		{"1.5", 1.5, true},
		{"1/2", 0.5, true},
		{"２", 2, true},
		{"１／２", 0.5, true},
		{"1/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseQuantity(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.in)
		}
	}
}
