package suggest

import (
	"fmt"
	"strings"
)

// mealLabels maps meal slots to the Japanese terms used in the prompt.
var mealLabels = map[string]string{
	"breakfast": "朝食",
	"lunch":     "昼食",
	"dinner":    "夕食",
	"snack":     "おやつ",
	"dessert":   "デザート",
}

// buildPrompt renders the suggestion request as a Japanese camp-cooking
// prompt. The response contract (a bare JSON array of recipe objects with
// exact member names) is spelled out so the output can be fed straight to
// the schema validator.
func buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("あなたはキャンプ料理の専門家です。")
	b.WriteString("以下の条件に合うキャンプ料理のレシピを")
	fmt.Fprintf(&b, "%d件提案してください。\n\n", req.Count)

	b.WriteString("条件:\n")
	if label, ok := mealLabels[string(req.Meal)]; ok {
		fmt.Fprintf(&b, "- 食事: %s\n", label)
	}
	if req.PartySize > 0 {
		fmt.Fprintf(&b, "- 人数: %d人\n", req.PartySize)
	}
	if req.Season != "" {
		fmt.Fprintf(&b, "- 季節: %s\n", req.Season)
	}
	if len(req.Equipment) > 0 {
		fmt.Fprintf(&b, "- 使える調理器具: %s\n", strings.Join(req.Equipment, "、"))
	}
	if len(req.HeatSources) > 0 {
		fmt.Fprintf(&b, "- 使える熱源: %s\n", strings.Join(req.HeatSources, "、"))
	}
	if req.Vegetarian {
		b.WriteString("- ベジタリアン対応であること\n")
	}
	if len(req.ExcludeNames) > 0 {
		fmt.Fprintf(&b, "- 次の料理は除外: %s\n", strings.Join(req.ExcludeNames, "、"))
	}

	b.WriteString(`
出力は次の形式のJSON配列のみとし、説明文やマークダウンは含めないでください。
各レシピは以下のキーを必ず含むJSONオブジェクトです:
name (料理名), meal (breakfast/lunch/dinner/snack/dessert),
description (説明), ingredients (材料の配列、各行は「材料名 分量」形式),
equipment (器具名の配列), equipmentCapabilities (器具能力IDの配列),
heatSources (熱源IDの配列), steps (手順の配列), cookTime (調理時間),
tip (コツ), servings (人数、整数), reason (この条件に合う理由)。

材料の分量には「2個」「300g」「大さじ1」のような表記を使ってください。
`)

	return b.String()
}
