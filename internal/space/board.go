// Package space holds the child's decorated space: its scene and the items
// they drag around in it.
package space

import (
	"errors"
	"math"
	"slices"

	"github.com/tatianab/hikaye/internal/models"
)

// Placement limits, in percent of the space.
const (
	MinX = 5.0
	MaxX = 95.0
	MinY = 5.0
	MaxY = 90.0
)

var (
	ErrDragging    = errors.New("another item is being dragged")
	ErrUnknownItem = errors.New("no such item")
)

// Rect is the on-screen bounding box of the space, in pointer units.
type Rect struct {
	Left, Top, Width, Height float64
}

// Clamp keeps a position inside the placement limits.
func Clamp(x, y float64) (float64, float64) {
	return math.Max(MinX, math.Min(MaxX, x)), math.Max(MinY, math.Min(MaxY, y))
}

// Position converts a pointer position into clamped percentages of r.
func Position(px, py float64, r Rect) (float64, float64) {
	if r.Width <= 0 || r.Height <= 0 {
		return Clamp(0, 0)
	}
	return Clamp((px-r.Left)/r.Width*100, (py-r.Top)/r.Height*100)
}

// Board shows the owner's items and lets one of them be dragged at a time.
//
// It is either idle, showing the owner's items as they are, or editing, showing
// a local copy that follows the pointer. Updates from the owner are ignored
// while editing and the local copy is handed back when the drag ends.
type Board struct {
	items    []models.Item
	dragging string
}

func NewBoard(items []models.Item) *Board {
	return &Board{items: slices.Clone(items)}
}

// Items returns the items as they should be drawn.
func (b *Board) Items() []models.Item {
	return slices.Clone(b.items)
}

// Dragging returns the id of the item being dragged.
func (b *Board) Dragging() (string, bool) {
	return b.dragging, b.dragging != ""
}

// Sync replaces the items with the owner's copy unless a drag is in progress.
// It reports whether the update was applied.
func (b *Board) Sync(items []models.Item) bool {
	if b.dragging != "" {
		return false
	}
	b.items = slices.Clone(items)
	return true
}

// Begin starts dragging the item with the given id.
func (b *Board) Begin(id string) error {
	if b.dragging != "" {
		return ErrDragging
	}
	if b.index(id) < 0 {
		return ErrUnknownItem
	}
	b.dragging = id
	return nil
}

// Move puts the dragged item under the pointer. It does nothing when idle.
func (b *Board) Move(px, py float64, r Rect) bool {
	i := b.index(b.dragging)
	if b.dragging == "" || i < 0 {
		return false
	}
	b.items[i].X, b.items[i].Y = Position(px, py, r)
	return true
}

// End finishes the drag and returns the items to commit to the owner.
// It returns false if no drag was in progress.
func (b *Board) End() ([]models.Item, bool) {
	if b.dragging == "" {
		return nil, false
	}
	b.dragging = ""
	return slices.Clone(b.items), true
}

// ItemAt finds the item drawn at a terminal cell of a cols×rows canvas.
// Items drawn later sit on top, so the search runs backwards.
func (b *Board) ItemAt(col, row, cols, rows int) (models.Item, bool) {
	for i := len(b.items) - 1; i >= 0; i-- {
		c, r := Cell(b.items[i].X, b.items[i].Y, cols, rows)
		// Emoji take two columns.
		if row == r && (col == c || col == c+1) {
			return b.items[i], true
		}
	}
	return models.Item{}, false
}

// Cell maps a percent position to the cell it is drawn at.
func Cell(x, y float64, cols, rows int) (int, int) {
	c := int(math.Round(x / 100 * float64(cols)))
	r := int(math.Round(y / 100 * float64(rows)))
	return min(max(c, 0), cols-1), min(max(r, 0), rows-1)
}

func (b *Board) index(id string) int {
	return slices.IndexFunc(b.items, func(it models.Item) bool { return it.ID == id })
}
