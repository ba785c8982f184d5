// README: Drink catalogue definitions.
package menu

import "bestellapp/internal/types"

// Drink is one orderable item. GlassType and RequiresGlassPrompt feed the
// cart's glass-prompt queue; everything else is display and pricing data.
type Drink struct {
	ID                  types.ID
	Name                string
	Price               types.Money
	Category            string
	GlassType           string
	RequiresGlassPrompt bool
	Active              bool
}
