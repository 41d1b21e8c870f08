package domain

// Template is a reusable checklist blueprint (e.g. "solo overnight",
// "family car camping"). Instantiating a template produces a fresh
// checklist with all items unchecked.
type Template struct {
	Record
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Items       []TemplateItem `json:"items"`
	// System templates ship with the server and can't be deleted.
	IsSystem bool `json:"is_system"`
}

// TemplateItem is one line in a template.
type TemplateItem struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	Note       string `json:"note,omitempty"`
}
