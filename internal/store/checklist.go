package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/takibiapp/takibi-server/internal/domain"
	"github.com/takibiapp/takibi-server/internal/id"
)

// ErrItemNotFound is returned when a checklist item ID does not exist
// within the checklist.
var ErrItemNotFound = errors.New("checklist item not found")

// AppendChecklistItems appends item drafts to an existing checklist,
// assigning each a fresh item ID. Returns the updated checklist.
func (s *Store) AppendChecklistItems(ctx context.Context, checklistID string, drafts []domain.ChecklistItemDraft) (*domain.Checklist, error) {
	checklist, err := s.Checklists.Get(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	for _, draft := range drafts {
		itemID, err := id.Generate("item")
		if err != nil {
			return nil, fmt.Errorf("generate item ID: %w", err)
		}
		checklist.Items = append(checklist.Items, domain.ChecklistItem{
			ID:         itemID,
			Name:       draft.Name,
			CategoryID: draft.CategoryID,
			Checked:    draft.Checked,
			Note:       draft.Note,
		})
	}
	checklist.Touch()

	if err := s.Checklists.Update(ctx, checklistID, checklist); err != nil {
		return nil, err
	}
	return checklist, nil
}

// SetChecklistItemChecked flips the checked state of one item.
func (s *Store) SetChecklistItemChecked(ctx context.Context, checklistID, itemID string, checked bool) (*domain.Checklist, error) {
	checklist, err := s.Checklists.Get(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range checklist.Items {
		if checklist.Items[i].ID == itemID {
			checklist.Items[i].Checked = checked
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}
	checklist.Touch()

	if err := s.Checklists.Update(ctx, checklistID, checklist); err != nil {
		return nil, err
	}
	return checklist, nil
}

// RemoveChecklistItem removes one item from a checklist.
func (s *Store) RemoveChecklistItem(ctx context.Context, checklistID, itemID string) (*domain.Checklist, error) {
	checklist, err := s.Checklists.Get(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range checklist.Items {
		if checklist.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	checklist.Items = append(checklist.Items[:idx], checklist.Items[idx+1:]...)
	checklist.Touch()

	if err := s.Checklists.Update(ctx, checklistID, checklist); err != nil {
		return nil, err
	}
	return checklist, nil
}
