package addrlistconst

const (
	// NextPrefix prefixes storage keys that map a list member (or the
	// sentinel) to the address following it.
	NextPrefix = 'n'
	// CountKey is a storage key of the member counter.
	CountKey = 'c'

	// AddressLen is a length of the list item in bytes.
	AddressLen = 20

	// SentinelAddress anchors both ends of the list. It is never a member.
	SentinelAddress = "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x01"
	// ZeroAddress is an empty address, it is never a member.
	ZeroAddress = "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"
)

// Failure reasons. Contract panics with exactly these messages, off-chain
// errors embed them.
const (
	// ErrNewAddressInvalid is returned when an address to be added is zero,
	// sentinel or the list owner itself.
	ErrNewAddressInvalid = "new address is invalid"
	// ErrDuplicateAddress is returned on attempt to insert an existing member.
	ErrDuplicateAddress = "no duplicate addresses allowed"
	// ErrRemoveInvalid is returned on attempt to remove zero or sentinel address.
	ErrRemoveInvalid = "cannot remove 0 address or sentinel address"
	// ErrRemoveIndexMismatch is returned when the given previous item does not
	// precede the removed one.
	ErrRemoveIndexMismatch = "item does not correspond to the index"
	// ErrSwapDuplicate is returned on attempt to swap in an existing member.
	ErrSwapDuplicate = "cannot add duplicate item to list"
	// ErrSwapOldInvalid is returned when the replaced item is zero or sentinel.
	ErrSwapOldInvalid = "oldItem cannot be 0 address or sentinel"
	// ErrSwapIndexMismatch is returned when the given previous item does not
	// precede the replaced one.
	ErrSwapIndexMismatch = "oldItem is not at the specified index"
)
