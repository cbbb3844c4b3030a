// Package cursor provides the selection cursor and viewport window used by
// scrollable lists.
package cursor

// Window returns the contiguous slice [start, end) of a list of total items
// that is displayed in height rows with selected highlighted.
//
// The selection stays vertically centered except near the list boundaries,
// where the window clamps to the edge. The result always satisfies
// end-start == min(height, total) and, for total > 0, start <= selected < end.
func Window(selected, total, height int) (start, end int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	if height >= total {
		return 0, total
	}

	half := height / 2
	oddExtra := height % 2

	switch {
	case selected < half:
		return 0, height
	case selected > total-half-1:
		return total - height, total
	default:
		return selected - half, selected + half + oddExtra
	}
}

// Cursor tracks the selected position in a list whose length changes over
// time. The length is passed to methods rather than stored.
type Cursor struct {
	pos int
}

// New creates a cursor at the given position.
func New(pos int) Cursor {
	return Cursor{pos: max(pos, 0)}
}

// Pos returns the current cursor position.
func (c Cursor) Pos() int {
	return c.pos
}

// Up moves the selection one line up, wrapping to the last item.
// No-op on an empty list.
func (c *Cursor) Up(listLen int) {
	c.Move(-1, listLen)
}

// Down moves the selection one line down, wrapping to the first item.
// No-op on an empty list.
func (c *Cursor) Down(listLen int) {
	c.Move(1, listLen)
}

// Move moves the selection by delta, wrapping modulo listLen.
func (c *Cursor) Move(delta, listLen int) {
	if listLen <= 0 {
		return
	}
	c.pos = mod(c.pos+delta, listLen)
}

// Jump sets the selection to pos, clamped into [0, listLen).
func (c *Cursor) Jump(pos, listLen int) {
	if listLen <= 0 {
		c.pos = 0
		return
	}
	c.pos = min(max(pos, 0), listLen-1)
}

// JumpEnd selects the last item.
func (c *Cursor) JumpEnd(listLen int) {
	c.Jump(listLen-1, listLen)
}

// Wrap brings the selection back into range after the list shrank, using
// pos mod listLen. Returns true if the position changed.
func (c *Cursor) Wrap(listLen int) bool {
	old := c.pos
	if listLen <= 0 {
		c.pos = 0
	} else {
		c.pos = mod(c.pos, listLen)
	}
	return c.pos != old
}

// VisibleRange returns the window for this cursor.
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	return Window(c.pos, listLen, height)
}

// Row returns the offset of the selection inside the visible window, or -1
// when nothing is selected.
func (c Cursor) Row(listLen, height int) int {
	start, end := c.VisibleRange(listLen, height)
	if c.pos < start || c.pos >= end {
		return -1
	}
	return c.pos - start
}

func mod(v, n int) int {
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}
