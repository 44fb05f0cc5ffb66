// Package dnd models drag-and-drop as a keyboard gesture: a source is picked
// up, hovered over targets and released. Only one gesture is active per Board.
package dnd

import "errors"

// Tag identifies the kind of item being dragged
type Tag string

const TagPost Tag = "post"

var (
	ErrGestureActive = errors.New("a drag is already in progress")
	ErrNotDragging   = errors.New("nothing is being dragged")
	ErrForeignItem   = errors.New("item belongs to another board")
)

// Payload is the data carried by a drag
type Payload struct {
	Tag     Tag
	ID      string
	FromDay int
}

// DragSource is anything that can be picked up
type DragSource interface {
	Payload() Payload
	IsDragging() bool
}

// DropTarget is anything that can receive a drop
type DropTarget interface {
	Accepts(tag Tag) bool
	IsOver() bool
}

// DropFunc handles a payload released over a target
type DropFunc func(Payload) error

type source struct {
	board   *Board
	payload Payload
}

func (s *source) Payload() Payload { return s.payload }

func (s *source) IsDragging() bool { return s.board.active == s }

type target struct {
	board  *Board
	accept Tag
	onDrop DropFunc
}

func (t *target) Accepts(tag Tag) bool { return tag == t.accept }

func (t *target) IsOver() bool { return t.board.over == t }

// Board coordinates sources and targets. It is not safe for concurrent use.
type Board struct {
	active *source
	over   *target
}

func NewBoard() *Board {
	return &Board{}
}

// Draggable registers a source carrying payload
func (b *Board) Draggable(p Payload) DragSource {
	return &source{board: b, payload: p}
}

// Droppable registers a target accepting payloads tagged accept
func (b *Board) Droppable(accept Tag, onDrop DropFunc) DropTarget {
	return &target{board: b, accept: accept, onDrop: onDrop}
}

// Pick starts a drag of src
func (b *Board) Pick(src DragSource) error {
	s, ok := src.(*source)
	if !ok || s.board != b {
		return ErrForeignItem
	}
	if b.active != nil {
		return ErrGestureActive
	}
	b.active = s
	b.over = nil
	return nil
}

// Hover moves the drag over dst. A nil dst leaves every target.
func (b *Board) Hover(dst DropTarget) error {
	if b.active == nil {
		return ErrNotDragging
	}
	if dst == nil {
		b.over = nil
		return nil
	}
	t, ok := dst.(*target)
	if !ok || t.board != b {
		return ErrForeignItem
	}
	b.over = t
	return nil
}

// Release ends the gesture. The drop handler runs only when the hovered
// target accepts the payload tag; dropped reports whether it ran.
func (b *Board) Release() (dropped bool, err error) {
	if b.active == nil {
		return false, ErrNotDragging
	}
	s, t := b.active, b.over
	b.active, b.over = nil, nil

	if t == nil || !t.Accepts(s.payload.Tag) {
		return false, nil
	}
	if t.onDrop != nil {
		if err := t.onDrop(s.payload); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Cancel abandons the active gesture without dropping
func (b *Board) Cancel() {
	b.active = nil
	b.over = nil
}

// Dragging returns the payload of the active gesture
func (b *Board) Dragging() (Payload, bool) {
	if b.active == nil {
		return Payload{}, false
	}
	return b.active.payload, true
}
