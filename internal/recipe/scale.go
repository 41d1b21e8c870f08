// Package recipe implements the ingredient-text pipeline: schema validation
// of untrusted recipe JSON, quantity scaling of ingredient lines, and
// shopping-list construction. Everything in this package is a pure transform
// over in-memory data; persistence and transport live elsewhere.
package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/takibiapp/takibi-server/internal/errors"
)

// measureWords is the fixed, closed set of Japanese count/measure words the
// scaler recognizes as quantity units. Alphabetic units (g, kg, ml, cc, cm,
// L...) are matched by the generic [A-Za-z]+ branch instead. Longer words
// come first so the regexp alternation prefers them.
var measureWords = []string{
	"大さじ", "小さじ", "カップ", "パック",
	"人分", "切れ", "かけ",
	"個", "枚", "本", "束", "袋", "片", "玉", "丁", "尾", "株", "合", "缶", "箱",
}

// quantityRe matches one <number><unit> token. The number is an integer, a
// decimal with a single fractional part, or a simple a/b fraction; full-width
// digits and separators are accepted and narrowed before parsing.
var quantityRe = regexp.MustCompile(
	`([0-9０-９]+(?:[./．／][0-9０-９]+)?)(` + strings.Join(measureWords, "|") + `|[A-Za-z]+)`,
)

// ScaleIngredients rescales every recognized quantity token in the given
// ingredient lines by targetServings/baseServings. The transform preserves
// order and length, and leaves any text outside recognized tokens untouched.
//
// When baseServings equals targetServings the input slice is returned as-is,
// so callers comparing for identity see no rounding artifacts. A non-positive
// baseServings is rejected explicitly rather than producing an infinite ratio.
func ScaleIngredients(ingredients []string, baseServings, targetServings int) ([]string, error) {
	if baseServings == targetServings {
		return ingredients, nil
	}
	if baseServings <= 0 {
		return nil, errors.Validationf("invalid base servings: %d", baseServings)
	}

	ratio := float64(targetServings) / float64(baseServings)
	scaled := make([]string, len(ingredients))
	for i, line := range ingredients {
		scaled[i] = scaleLine(line, ratio)
	}
	return scaled, nil
}

// scaleLine rescales each quantity token in a single line. Tokens are scaled
// and rounded independently; there is no remainder correction across tokens.
func scaleLine(line string, ratio float64) string {
	return quantityRe.ReplaceAllStringFunc(line, func(token string) string {
		parts := quantityRe.FindStringSubmatch(token)
		value, ok := parseQuantity(parts[1])
		if !ok {
			return token
		}
		return formatQuantity(value*ratio) + parts[2]
	})
}

// parseQuantity evaluates a matched number segment. Fractions are evaluated
// as a ÷ b before scaling. Reports false for a zero denominator, which the
// caller treats as an unrecognized token.
func parseQuantity(s string) (float64, bool) {
	s = width.Narrow.String(s)
	if num, den, isFraction := strings.Cut(s, "/"); isFraction {
		a, errA := strconv.ParseFloat(num, 64)
		b, errB := strconv.ParseFloat(den, 64)
		if errA != nil || errB != nil || b == 0 {
			return 0, false
		}
		return a / b, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatQuantity renders a scaled value. Results within 0.05 of an integer
// snap to that integer with no decimal point; everything else rounds to one
// decimal place. The threshold is absolute, not relative to the value.
func formatQuantity(v float64) string {
	nearest := math.Round(v)
	if math.Abs(v-nearest) < 0.05 {
		return strconv.FormatFloat(nearest, 'f', -1, 64)
	}
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}
