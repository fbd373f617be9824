package worktask

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Type is the kind of physical work a task represents.
type Type int

const (
	// TypeUnknown represents an invalid or undefined task type.
	TypeUnknown Type = iota

	// TypePick takes stock out of a bin for an outbound order line.
	TypePick

	// TypePutaway stores received stock into a destination bin.
	TypePutaway

	// TypeTransfer moves stock between warehouses.
	TypeTransfer
)

// getTypeStrings returns the string representation for every Type value.
func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:  "Unknown",
		TypePick:     "Pick",
		TypePutaway:  "Putaway",
		TypeTransfer: "Transfer",
	}
}

// Validate checks that t is one of the defined task types.
func (t Type) Validate() error {
	if t != TypePick && t != TypePutaway && t != TypeTransfer {
		return errs.NewValueIsInvalidErrorWithCause("taskType", fmt.Errorf("%d is not a valid task type", t))
	}
	return nil
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
