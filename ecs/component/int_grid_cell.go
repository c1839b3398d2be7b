package component

import "cmp"

// IntGridCell is added to every non-empty cell of an IntGrid layer. The zero
// value means the cell is empty.
type IntGridCell struct {
	Value int32
}

var IntGridCellComponent = NewComponent[IntGridCell]()

func (c IntGridCell) Empty() bool {
	return c.Value == 0
}

// Compare orders cells by value.
func (c IntGridCell) Compare(o IntGridCell) int {
	return cmp.Compare(c.Value, o.Value)
}
