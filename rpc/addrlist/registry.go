package addrlist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neofs-addrlist/registry"
)

// ErrNotMember is returned when the address to be modified is missing in the
// current list.
var ErrNotMember = errors.New("address is not a list member")

// FetchRegistry reads current list members from the contract and returns
// their off-chain copy owned by the contract.
func FetchRegistry(c *ContractReader, opts ...registry.Option) (*registry.Registry, error) {
	addrs, err := c.GetAddresses()
	if err != nil {
		return nil, fmt.Errorf("get addresses: %w", err)
	}

	r, err := registry.New(c.hash, addrs, opts...)
	if err != nil {
		return nil, fmt.Errorf("build registry from contract state: %w", err)
	}

	return r, nil
}

// FindPredecessor reads current list members from the contract and returns
// the one preceding item. Sentinel is returned for the list head.
func FindPredecessor(c *ContractReader, item util.Uint160) (util.Uint160, error) {
	addrs, err := c.GetAddresses()
	if err != nil {
		return util.Uint160{}, fmt.Errorf("get addresses: %w", err)
	}

	prev, ok := registry.Predecessor(addrs, item)
	if !ok {
		return util.Uint160{}, fmt.Errorf("%w: %s", ErrNotMember, item.StringLE())
	}

	return prev, nil
}

// ClassifyError attaches registry error kind to err if it is caused by the
// contract failure with a known reason, so it can be checked with
// [errors.Is]. Other errors are returned as is.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, reason := range registry.Reasons() {
		if strings.Contains(msg, reason) {
			return fmt.Errorf("%w: %w", registry.KindOf(reason), err)
		}
	}

	return err
}
