package registry

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neofs-addrlist/contracts/addrlist/addrlistconst"
)

// Loader restores Registry from the Address List contract storage. Storage
// items are passed one by one to Write in any order, Registry is built after
// the last one.
//
// Loader instances must be constructed using NewLoader.
type Loader struct {
	self util.Uint160

	next     map[util.Uint160]util.Uint160
	count    int
	countSet bool
}

// NewLoader constructs Loader for the contract deployed at self.
func NewLoader(self util.Uint160) *Loader {
	return &Loader{
		self: self,
		next: make(map[util.Uint160]util.Uint160),
	}
}

// Write decodes single storage item of the contract. It returns ErrCorrupted
// for items not belonging to the contract storage model.
func (x *Loader) Write(key, value []byte) error {
	switch {
	case len(key) == 1 && key[0] == addrlistconst.CountKey:
		n := bigint.FromBytes(value)
		if !n.IsInt64() || n.Sign() < 0 {
			return fmt.Errorf("%w: invalid count %s", ErrCorrupted, n)
		}

		x.count = int(n.Int64())
		x.countSet = true
	case len(key) == 1+addrlistconst.AddressLen && key[0] == addrlistconst.NextPrefix:
		from, err := util.Uint160DecodeBytesBE(key[1:])
		if err != nil {
			return fmt.Errorf("%w: decode link key: %w", ErrCorrupted, err)
		}

		to, err := util.Uint160DecodeBytesBE(value)
		if err != nil {
			return fmt.Errorf("%w: decode link from %s: %w", ErrCorrupted, from.StringLE(), err)
		}

		x.next[from] = to
	default:
		return fmt.Errorf("%w: unexpected storage key %x", ErrCorrupted, key)
	}

	return nil
}

// Registry builds Registry from the written items and checks its invariants.
func (x *Loader) Registry(opts ...Option) (*Registry, error) {
	if !x.countSet {
		return nil, fmt.Errorf("%w: missing count", ErrCorrupted)
	}

	r := newRegistry(x.self, len(x.next), opts)
	for k, v := range x.next {
		r.next[k] = v
	}
	r.count = x.count

	err := r.check()
	if err != nil {
		return nil, err
	}

	return r, nil
}
