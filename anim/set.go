package anim

import (
	"iter"
	"slices"
	"time"
)

const (
	setBlockSize = 64
)

// Set owns the active animation tasks of a game. Tasks live in fixed-size
// blocks and freed slots are reused, so steady-state play does not grow the
// backing storage. Slot indices stay stable until Compact is called.
//
// Tasks are stepped in the order they were added, whatever slot they got.
type Set struct {
	blocks    [][setBlockSize]Task
	filled    [][setBlockSize]bool
	freeSlots []int
	order     []int
	nextIndex int
	live      int
}

// NewSet creates an empty task set.
func NewSet() *Set {
	return &Set{}
}

// Add stores a task and returns its slot index.
func (s *Set) Add(task Task) int {
	if task == nil {
		return -1
	}

	if len(s.freeSlots) > 0 {
		index := s.freeSlots[len(s.freeSlots)-1]
		s.freeSlots = s.freeSlots[:len(s.freeSlots)-1]

		blockIdx := index / setBlockSize
		slotIdx := index % setBlockSize

		s.blocks[blockIdx][slotIdx] = task
		s.filled[blockIdx][slotIdx] = true
		s.order = append(s.order, index)
		s.live++
		return index
	}

	index := s.nextIndex
	s.nextIndex++

	blockIdx := index / setBlockSize
	slotIdx := index % setBlockSize

	if blockIdx >= len(s.blocks) {
		s.blocks = append(s.blocks, [setBlockSize]Task{})
		s.filled = append(s.filled, [setBlockSize]bool{})
	}

	s.blocks[blockIdx][slotIdx] = task
	s.filled[blockIdx][slotIdx] = true
	s.order = append(s.order, index)
	s.live++
	return index
}

// Get returns the task at index, or nil for an empty slot.
func (s *Set) Get(index int) Task {
	if !s.Has(index) {
		return nil
	}
	return s.blocks[index/setBlockSize][index%setBlockSize]
}

// Has reports whether index holds a task.
func (s *Set) Has(index int) bool {
	if index < 0 {
		return false
	}

	blockIdx := index / setBlockSize
	if blockIdx >= len(s.blocks) {
		return false
	}

	return s.filled[blockIdx][index%setBlockSize]
}

// Remove releases the slot at index. Removing an empty slot is a no-op.
func (s *Set) Remove(index int) {
	if !s.Has(index) {
		return
	}

	s.release(index)
	if i := slices.Index(s.order, index); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Set) release(index int) {
	blockIdx := index / setBlockSize
	slotIdx := index % setBlockSize

	s.filled[blockIdx][slotIdx] = false
	s.blocks[blockIdx][slotIdx] = nil
	s.freeSlots = append(s.freeSlots, index)
	s.live--
}

// Len returns the number of stored tasks.
func (s *Set) Len() int {
	return s.live
}

// Step advances every task to now in the order they were added and drops
// the ones that finished. It returns the number of tasks still running.
func (s *Set) Step(now time.Duration) int {
	kept := 0
	for _, index := range s.order {
		if s.blocks[index/setBlockSize][index%setBlockSize].Step(now) {
			s.release(index)
			continue
		}
		s.order[kept] = index
		kept++
	}
	s.order = s.order[:kept]
	return s.live
}

// Clear drops every task.
func (s *Set) Clear() {
	for _, index := range s.order {
		s.release(index)
	}
	s.order = s.order[:0]
}

// Iter yields occupied slots in the order their tasks were added.
func (s *Set) Iter() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for _, index := range s.order {
			if !yield(index, s.blocks[index/setBlockSize][index%setBlockSize]) {
				return
			}
		}
	}
}

// Compact packs the stored tasks into the lowest slots, keeping their order,
// and returns the old-to-new index mapping.
func (s *Set) Compact() map[int]int {
	indexMap := make(map[int]int, s.live)

	if s.live == 0 {
		s.blocks = nil
		s.filled = nil
		s.freeSlots = nil
		s.order = nil
		s.nextIndex = 0
		return indexMap
	}

	numBlocks := (s.live + setBlockSize - 1) / setBlockSize
	blocks := make([][setBlockSize]Task, numBlocks)
	filled := make([][setBlockSize]bool, numBlocks)

	writePos := 0
	for readIdx, task := range s.Iter() {
		indexMap[readIdx] = writePos
		blocks[writePos/setBlockSize][writePos%setBlockSize] = task
		filled[writePos/setBlockSize][writePos%setBlockSize] = true
		writePos++
	}

	s.blocks = blocks
	s.filled = filled
	s.freeSlots = nil
	s.order = s.order[:0]
	for i := range writePos {
		s.order = append(s.order, i)
	}
	s.nextIndex = writePos
	return indexMap
}
