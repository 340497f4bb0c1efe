// Package validation provides input validation utilities
package validation

import (
	"fmt"

	"foodgram/internal/models"
)

// IngredientAmount is one (ingredient, amount) pair of a candidate
// recipe composition.
type IngredientAmount struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// Composition is the candidate recipe composition submitted for a
// create or update.
type Composition struct {
	Ingredients []IngredientAmount
	TagIDs      []uint
	CookingTime int
}

// CompositionCatalog exposes the reference data a composition is
// validated against. Lookups are by ID only; no writes happen here.
type CompositionCatalog struct {
	KnownIngredients map[uint]struct{}
	KnownTags        map[uint]struct{}
}

// ValidateComposition checks a candidate composition against the
// catalog and returns the first violated rule. It has no side effects.
func ValidateComposition(c Composition, catalog CompositionCatalog) error {
	if len(c.Ingredients) == 0 {
		return fmt.Errorf("at least one ingredient is required")
	}

	seenIngredients := make(map[uint]struct{}, len(c.Ingredients))
	for _, ing := range c.Ingredients {
		if ing.Amount < models.MinAmount || ing.Amount > models.MaxAmount {
			return fmt.Errorf("ingredient amount must be between %d and %d, got %d",
				models.MinAmount, models.MaxAmount, ing.Amount)
		}
		if _, dup := seenIngredients[ing.ID]; dup {
			return fmt.Errorf("ingredient %d is listed more than once", ing.ID)
		}
		seenIngredients[ing.ID] = struct{}{}
		if _, ok := catalog.KnownIngredients[ing.ID]; !ok {
			return fmt.Errorf("ingredient %d not found", ing.ID)
		}
	}

	if len(c.TagIDs) == 0 {
		return fmt.Errorf("at least one tag is required")
	}

	seenTags := make(map[uint]struct{}, len(c.TagIDs))
	for _, tagID := range c.TagIDs {
		if _, dup := seenTags[tagID]; dup {
			return fmt.Errorf("tag %d is listed more than once", tagID)
		}
		seenTags[tagID] = struct{}{}
		if _, ok := catalog.KnownTags[tagID]; !ok {
			return fmt.Errorf("tag %d not found", tagID)
		}
	}

	if c.CookingTime < models.MinCookingTime || c.CookingTime > models.MaxCookingTime {
		return fmt.Errorf("cooking time must be between %d and %d minutes, got %d",
			models.MinCookingTime, models.MaxCookingTime, c.CookingTime)
	}

	return nil
}
