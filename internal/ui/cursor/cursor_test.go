package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		selected  int
		total     int
		height    int
		wantStart int
		wantEnd   int
	}{
		{name: "empty list", selected: 0, total: 0, height: 5, wantStart: 0, wantEnd: 0},
		{name: "fits on screen", selected: 2, total: 4, height: 5, wantStart: 0, wantEnd: 4},
		{name: "exactly fits", selected: 4, total: 5, height: 5, wantStart: 0, wantEnd: 5},
		{name: "near top clamps", selected: 2, total: 20, height: 5, wantStart: 0, wantEnd: 5},
		{name: "middle is centered", selected: 10, total: 20, height: 5, wantStart: 8, wantEnd: 13},
		{name: "near bottom clamps", selected: 19, total: 20, height: 5, wantStart: 15, wantEnd: 20},
		{name: "even height middle", selected: 10, total: 20, height: 4, wantStart: 8, wantEnd: 12},
		{name: "even height boundary", selected: 18, total: 20, height: 4, wantStart: 16, wantEnd: 20},
		{name: "height one", selected: 7, total: 20, height: 1, wantStart: 7, wantEnd: 8},
		{name: "height one first", selected: 0, total: 20, height: 1, wantStart: 0, wantEnd: 1},
		{name: "height one last", selected: 19, total: 20, height: 1, wantStart: 19, wantEnd: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.selected, tt.total, tt.height)
			assert.Equal(t, tt.wantStart, start, "start")
			assert.Equal(t, tt.wantEnd, end, "end")
		})
	}
}

func TestWindowInvariants(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for height := 1; height <= 12; height++ {
			for selected := 0; selected < max(total, 1); selected++ {
				start, end := Window(selected, total, height)
				if end-start != min(height, total) {
					t.Fatalf("Window(%d, %d, %d) = [%d, %d): size %d, want %d",
						selected, total, height, start, end, end-start, min(height, total))
				}
				if total > 0 && (selected < start || selected >= end) {
					t.Fatalf("Window(%d, %d, %d) = [%d, %d) does not contain selection",
						selected, total, height, start, end)
				}
				if start < 0 || end > total {
					t.Fatalf("Window(%d, %d, %d) = [%d, %d) out of bounds",
						selected, total, height, start, end)
				}
			}
		}
	}
}

func TestMoveWraps(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		delta   int
		len     int
		wantPos int
	}{
		{"down within bounds", 0, 1, 3, 1},
		{"down at end wraps", 2, 1, 3, 0},
		{"up at start wraps", 0, -1, 3, 2},
		{"up within bounds", 2, -1, 3, 1},
		{"large delta wraps", 1, 7, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.initial)
			c.Move(tt.delta, tt.len)
			assert.Equal(t, tt.wantPos, c.Pos())
		})
	}
}

func TestMoveEmptyList(t *testing.T) {
	c := New(0)
	c.Up(0)
	c.Down(0)
	assert.Equal(t, 0, c.Pos())
}

func TestWrap(t *testing.T) {
	c := New(3)
	changed := c.Wrap(3)
	assert.True(t, changed)
	assert.Equal(t, 0, c.Pos())

	c = New(1)
	assert.False(t, c.Wrap(3))
	assert.Equal(t, 1, c.Pos())

	c = New(2)
	c.Wrap(0)
	assert.Equal(t, 0, c.Pos())
}

func TestJump(t *testing.T) {
	c := New(0)
	c.Jump(10, 5)
	assert.Equal(t, 4, c.Pos())
	c.Jump(-3, 5)
	assert.Equal(t, 0, c.Pos())
	c.JumpEnd(8)
	assert.Equal(t, 7, c.Pos())
}

func TestRow(t *testing.T) {
	c := New(10)
	assert.Equal(t, 2, c.Row(20, 5))

	c = New(19)
	assert.Equal(t, 4, c.Row(20, 5))

	c = New(0)
	assert.Equal(t, -1, c.Row(0, 5))
}
