/*
Package registry provides an in-memory ordered set of unique addresses with
the same semantics as the Address List contract.

Members are linked one to another through a map anchored by [Sentinel]: the
sentinel points to the head and the last member points back to the sentinel.
New members are prepended. Remove and Swap take the member directly preceding
the target (or [Sentinel] for the head) instead of a position, a wrong
predecessor is rejected with [ErrIndexMismatch]. Use [Predecessor] to derive
it from an [Registry.Addresses] snapshot.

Registry is safe for concurrent use, all operations are serialized by a
single lock.
*/
package registry

import (
	"fmt"
	"sync"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neofs-addrlist/contracts/addrlist/addrlistconst"
	"go.uber.org/zap"
)

var (
	// Zero is an empty address, it is never a member.
	Zero = util.Uint160{}
	// Sentinel anchors both ends of the list, it is never a member.
	Sentinel = util.Uint160([]byte(addrlistconst.SentinelAddress))
)

// Registry is an ordered set of unique addresses. Registry instances must be
// constructed using New.
type Registry struct {
	log  *zap.Logger
	self util.Uint160

	mtx   sync.RWMutex
	next  map[util.Uint160]util.Uint160
	count int
}

// Option configures Registry.
type Option func(*Registry)

// WithLogger sets logger for accepted modifications. Nop logger is used by
// default.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New constructs Registry owned by self and filled with the initial members
// in the given order. Initial members must be unique and differ from Zero,
// Sentinel and self, otherwise ErrInvalidInitialSet is returned.
func New(self util.Uint160, initial []util.Uint160, opts ...Option) (*Registry, error) {
	r := newRegistry(self, len(initial)+1, opts)

	current := Sentinel
	for i, addr := range initial {
		if !r.isValidNew(addr) {
			return nil, fmt.Errorf("%w: item #%d (%s): %w",
				ErrInvalidInitialSet, i, addr.StringLE(), newError(addrlistconst.ErrNewAddressInvalid))
		}

		// current has no link until the next member is added
		if _, ok := r.next[addr]; ok || addr == current {
			return nil, fmt.Errorf("%w: item #%d (%s): %w",
				ErrInvalidInitialSet, i, addr.StringLE(), newError(addrlistconst.ErrDuplicateAddress))
		}

		r.next[current] = addr
		current = addr
	}

	r.next[current] = Sentinel
	r.count = len(initial)

	return r, nil
}

func newRegistry(self util.Uint160, capacity int, opts []Option) *Registry {
	r := &Registry{
		log:  zap.NewNop(),
		self: self,
		next: make(map[util.Uint160]util.Uint160, capacity),
	}

	for _, o := range opts {
		o(r)
	}

	return r
}

// Self returns address of the registry owner.
func (r *Registry) Self() util.Uint160 {
	return r.self
}

// IsMember checks whether addr is in the list. It is always false for Zero,
// Sentinel and the registry owner.
func (r *Registry) IsMember(addr util.Uint160) bool {
	if addr == Sentinel {
		return false
	}

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	_, ok := r.next[addr]
	return ok
}

// Count returns the number of members.
func (r *Registry) Count() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.count
}

// Addresses returns all members from the head to the tail. The result is
// a snapshot, it is not affected by further modifications.
func (r *Registry) Addresses() []util.Uint160 {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	res := make([]util.Uint160, 0, r.count)
	for cur := r.next[Sentinel]; cur != Sentinel; cur = r.next[cur] {
		res = append(res, cur)
	}

	return res
}

// Insert adds newItem to the head of the list.
func (r *Registry) Insert(newItem util.Uint160) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if !r.isValidNew(newItem) {
		return newError(addrlistconst.ErrNewAddressInvalid)
	}
	if _, ok := r.next[newItem]; ok {
		return newError(addrlistconst.ErrDuplicateAddress)
	}

	r.next[newItem] = r.next[Sentinel]
	r.next[Sentinel] = newItem
	r.count++

	r.log.Debug("address inserted",
		zap.Stringer("address", newItem),
		zap.Int("count", r.count))

	return nil
}

// Remove removes item from the list. prevItem must directly precede item,
// Sentinel precedes the head.
func (r *Registry) Remove(prevItem, item util.Uint160) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if isReserved(item) {
		return newError(addrlistconst.ErrRemoveInvalid)
	}
	if next, ok := r.next[prevItem]; !ok || next != item {
		return newError(addrlistconst.ErrRemoveIndexMismatch)
	}

	r.next[prevItem] = r.next[item]
	delete(r.next, item)
	r.count--

	r.log.Debug("address removed",
		zap.Stringer("address", item),
		zap.Int("count", r.count))

	return nil
}

// Swap replaces oldItem with newItem keeping the position. prevItem must
// directly precede oldItem, Sentinel precedes the head.
func (r *Registry) Swap(prevItem, oldItem, newItem util.Uint160) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if !r.isValidNew(newItem) {
		return newError(addrlistconst.ErrNewAddressInvalid)
	}
	if _, ok := r.next[newItem]; ok {
		return newError(addrlistconst.ErrSwapDuplicate)
	}
	if isReserved(oldItem) {
		return newError(addrlistconst.ErrSwapOldInvalid)
	}
	if next, ok := r.next[prevItem]; !ok || next != oldItem {
		return newError(addrlistconst.ErrSwapIndexMismatch)
	}

	r.next[newItem] = r.next[oldItem]
	r.next[prevItem] = newItem
	delete(r.next, oldItem)

	r.log.Debug("address swapped",
		zap.Stringer("old", oldItem),
		zap.Stringer("new", newItem))

	return nil
}

// Check verifies list invariants: the list is a single chain of valid
// unique members starting and ending at Sentinel, its length equals Count
// and there are no detached links. Violations are reported as ErrCorrupted.
func (r *Registry) Check() error {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.check()
}

func (r *Registry) check() error {
	if _, ok := r.next[Sentinel]; !ok {
		return fmt.Errorf("%w: missing head link", ErrCorrupted)
	}
	if r.count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrCorrupted, r.count)
	}

	visited := make(map[util.Uint160]struct{}, r.count)
	cur := r.next[Sentinel]
	for i := 0; i < r.count; i++ {
		if cur == Sentinel {
			return fmt.Errorf("%w: list ends after %d of %d members", ErrCorrupted, i, r.count)
		}
		if !r.isValidNew(cur) {
			return fmt.Errorf("%w: invalid member %s", ErrCorrupted, cur.StringLE())
		}
		if _, ok := visited[cur]; ok {
			return fmt.Errorf("%w: member %s is linked twice", ErrCorrupted, cur.StringLE())
		}
		visited[cur] = struct{}{}

		next, ok := r.next[cur]
		if !ok {
			return fmt.Errorf("%w: dangling link to %s", ErrCorrupted, cur.StringLE())
		}
		cur = next
	}

	if cur != Sentinel {
		return fmt.Errorf("%w: list is longer than %d members", ErrCorrupted, r.count)
	}
	if len(r.next) != r.count+1 {
		return fmt.Errorf("%w: %d detached links", ErrCorrupted, len(r.next)-r.count-1)
	}

	return nil
}

func (r *Registry) isValidNew(addr util.Uint160) bool {
	return !isReserved(addr) && addr != r.self
}

func isReserved(addr util.Uint160) bool {
	return addr == Zero || addr == Sentinel
}

// Predecessor returns the item directly preceding item in the given
// Addresses snapshot: Sentinel for the head, false if item is missing.
func Predecessor(snapshot []util.Uint160, item util.Uint160) (util.Uint160, bool) {
	for i := range snapshot {
		if snapshot[i] != item {
			continue
		}
		if i == 0 {
			return Sentinel, true
		}
		return snapshot[i-1], true
	}

	return util.Uint160{}, false
}
