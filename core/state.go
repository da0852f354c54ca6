package core

import (
	"fmt"
	"sort"
)

// Cursor points at the next instruction to execute.
type Cursor struct {
	Block int
	Inst  int
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Block, c.Inst)
}

// Stack is the operand stack.
type Stack struct {
	values []int64
}

// Push places v on top of the stack.
func (s *Stack) Push(v int64) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (int64, error) {
	v, err := s.Peek()
	if err != nil {
		return 0, err
	}

	s.values = s.values[:len(s.values)-1]

	return v, nil
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (int64, error) {
	if len(s.values) == 0 {
		return 0, ErrStackUnderflow
	}

	return s.values[len(s.values)-1], nil
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	return len(s.values)
}

// Values returns a copy of the stack, bottom first.
func (s *Stack) Values() []int64 {
	return append([]int64(nil), s.values...)
}

// Heap is an address-indexed store that grows on demand. Cells that were
// never written read as zero. Addresses must lie in [0, limit).
type Heap struct {
	cells []int64
	limit int64
}

// NewHeap creates an empty heap that accepts addresses below limit.
func NewHeap(limit int64) *Heap {
	if limit <= 0 {
		panic("heap limit must be positive")
	}

	return &Heap{limit: limit}
}

// Limit returns the first address that is out of range.
func (h *Heap) Limit() int64 {
	return h.limit
}

// Load reads the cell at addr.
func (h *Heap) Load(addr int64) (int64, error) {
	if err := h.check(addr); err != nil {
		return 0, err
	}

	if addr >= int64(len(h.cells)) {
		return 0, nil
	}

	return h.cells[addr], nil
}

// Store writes v to the cell at addr, growing the heap if needed.
func (h *Heap) Store(addr, v int64) error {
	if err := h.check(addr); err != nil {
		return err
	}

	if addr >= int64(len(h.cells)) {
		h.grow(addr + 1)
	}

	h.cells[addr] = v

	return nil
}

// Size returns the number of cells currently backed by memory.
func (h *Heap) Size() int {
	return len(h.cells)
}

// NonZero returns the written cells holding a non-zero value, by address.
func (h *Heap) NonZero() map[int64]int64 {
	cells := make(map[int64]int64)
	for addr, v := range h.cells {
		if v != 0 {
			cells[int64(addr)] = v
		}
	}
	return cells
}

func (h *Heap) check(addr int64) error {
	if addr < 0 || addr >= h.limit {
		return fmt.Errorf("%w: address %d, limit %d",
			ErrHeapAddressOutOfRange, addr, h.limit)
	}
	return nil
}

func (h *Heap) grow(n int64) {
	if n <= int64(cap(h.cells)) {
		h.cells = h.cells[:n]
		return
	}

	newCap := int64(cap(h.cells)) * 2
	if newCap < n {
		newCap = n
	}
	if newCap > h.limit {
		newCap = h.limit
	}

	cells := make([]int64, n, newCap)
	copy(cells, h.cells)
	h.cells = cells
}

// State is the mutable run-time state of one machine.
type State struct {
	Stack  Stack
	Heap   *Heap
	Cursor Cursor
	Steps  uint64
}

// NewState creates a state with an empty stack and an all-zero heap.
func NewState(heapLimit int64) *State {
	return &State{
		Heap: NewHeap(heapLimit),
	}
}

func sortedAddrs(cells map[int64]int64) []int64 {
	addrs := make([]int64, 0, len(cells))
	for a := range cells {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
