// Package t2048 implements the 2048 sliding-tile puzzle: a pure grid engine,
// a game session with undo and keep-playing, and the registry adapter that
// renders it onto a core.Screen.
package t2048

// Variant describes a registered board configuration.
type Variant struct {
	ID    string
	Title string
	Size  int // 0 means the configured board.size
}

// Variants lists the registered game variants.
var Variants = []Variant{
	{ID: "2048", Title: "2048", Size: 0},
	{ID: "2048_5x5", Title: "2048 (5x5)", Size: 5},
	{ID: "2048_3x3", Title: "2048 (3x3)", Size: 3},
}

// VariantByID returns the variant with the given ID.
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
