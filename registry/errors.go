package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nspcc-dev/neofs-addrlist/contracts/addrlist/addrlistconst"
)

// Error kinds of rejected operations. Returned errors can be checked with
// [errors.Is], their text contains one of the addrlistconst failure reasons.
var (
	// ErrInvalidAddress is returned when an operand is zero address, sentinel
	// or (for new members) the registry's own address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrDuplicateAddress is returned when an address to be added is already
	// a member.
	ErrDuplicateAddress = errors.New("duplicate address")
	// ErrIndexMismatch is returned when the given previous item does not
	// precede the target in the current list.
	ErrIndexMismatch = errors.New("index mismatch")

	// ErrInvalidInitialSet is returned by New on invalid initial members.
	ErrInvalidInitialSet = errors.New("invalid initial set")
	// ErrCorrupted is returned when the list state breaks its invariants.
	ErrCorrupted = errors.New("list is corrupted")
)

var reasonKinds = map[string]error{
	addrlistconst.ErrNewAddressInvalid:   ErrInvalidAddress,
	addrlistconst.ErrRemoveInvalid:       ErrInvalidAddress,
	addrlistconst.ErrSwapOldInvalid:      ErrInvalidAddress,
	addrlistconst.ErrDuplicateAddress:    ErrDuplicateAddress,
	addrlistconst.ErrSwapDuplicate:       ErrDuplicateAddress,
	addrlistconst.ErrRemoveIndexMismatch: ErrIndexMismatch,
	addrlistconst.ErrSwapIndexMismatch:   ErrIndexMismatch,
}

// KindOf returns error kind of the given addrlistconst failure reason or nil
// if the reason is unknown.
func KindOf(reason string) error {
	return reasonKinds[reason]
}

// Reasons returns all known failure reasons sorted lexicographically.
func Reasons() []string {
	res := make([]string, 0, len(reasonKinds))
	for r := range reasonKinds {
		res = append(res, r)
	}
	slices.Sort(res)
	return res
}

func newError(reason string) error {
	return fmt.Errorf("%w: %s", reasonKinds[reason], reason)
}
