package domain

// Checklist is one packing list for a trip.
type Checklist struct {
	Record
	Name  string          `json:"name"`
	Note  string          `json:"note,omitempty"`
	Items []ChecklistItem `json:"items"`
}

// ChecklistItem is one line on a checklist.
type ChecklistItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	Checked    bool   `json:"checked"`
	Note       string `json:"note,omitempty"`
}

// Progress returns how many items are checked out of the total.
func (c *Checklist) Progress() (checked, total int) {
	for _, item := range c.Items {
		if item.Checked {
			checked++
		}
	}
	return checked, len(c.Items)
}

// Category groups checklist items (e.g. food, gear, clothing).
type Category struct {
	Record
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	SortOrder int    `json:"sort_order"`
	// System categories ship with the server and can't be deleted.
	IsSystem bool `json:"is_system"`
}
