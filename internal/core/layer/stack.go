package layer

import (
	"fmt"

	"buildcfg.dev/cli/internal/core/target"
)

// Slot is a fixed precedence slot in the source stack. The order is not
// configurable: file defaults sit below file target blocks, which sit below
// the environment override.
type Slot int

const (
	// SlotFileDefault holds the file-based unconditioned block.
	SlotFileDefault Slot = iota

	// SlotFileTarget holds file-based target-conditioned blocks. Several
	// blocks may occupy this slot; they keep their order of appearance.
	SlotFileTarget

	// SlotEnvOverride holds the environment-variable override. At most one
	// layer may occupy it.
	SlotEnvOverride
)

var slotOrder = []Slot{SlotFileDefault, SlotFileTarget, SlotEnvOverride}

func (s Slot) String() string {
	switch s {
	case SlotFileDefault:
		return "file-default"
	case SlotFileTarget:
		return "file-target"
	case SlotEnvOverride:
		return "env-override"
	default:
		return "unknown"
	}
}

// stackable reports whether the slot accepts more than one layer.
func (s Slot) stackable() bool {
	return s != SlotEnvOverride
}

// DuplicateLayerError reports two layers claiming the same non-stackable
// precedence slot.
type DuplicateLayerError struct {
	Slot Slot
}

func (e *DuplicateLayerError) Error() string {
	return fmt.Sprintf("precedence slot %q already holds a layer", e.Slot)
}

// Placed is a layer together with the slot it occupies.
type Placed struct {
	Slot  Slot
	Layer *Layer
}

// Stack holds configuration layers in fixed precedence order. It orders
// references only and never mutates layer contents.
type Stack struct {
	layers map[Slot][]*Layer
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{layers: make(map[Slot][]*Layer)}
}

// Push adds a layer to a precedence slot. Pushing a second layer into a
// non-stackable slot fails with DuplicateLayerError.
func (s *Stack) Push(slot Slot, l *Layer) error {
	if !slot.stackable() && len(s.layers[slot]) > 0 {
		return &DuplicateLayerError{Slot: slot}
	}
	s.layers[slot] = append(s.layers[slot], l)
	return nil
}

// Ordered returns all layers lowest-precedence first, so later layers win
// ties. Within a slot, layers keep push order. The slot walk is explicit, so
// the result never depends on map iteration order.
func (s *Stack) Ordered() []Placed {
	var ordered []Placed
	for _, slot := range slotOrder {
		for _, l := range s.layers[slot] {
			ordered = append(ordered, Placed{Slot: slot, Layer: l})
		}
	}
	return ordered
}

// Len returns the total number of layers in the stack.
func (s *Stack) Len() int {
	total := 0
	for _, slot := range slotOrder {
		total += len(s.layers[slot])
	}
	return total
}

// Validate checks every layer's selectors against the attribute registry.
// Called once after loading, before any resolution; once it passes, matching
// and resolution cannot fail.
func (s *Stack) Validate(registry *target.Registry) error {
	for _, placed := range s.Ordered() {
		if err := placed.Layer.Validate(registry); err != nil {
			return err
		}
	}
	return nil
}
