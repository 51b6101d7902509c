// Package addrlist contains RPC wrappers for NeoFS Address List contract.
package addrlist

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// InsertedEvent represents "Inserted" event emitted by the contract.
type InsertedEvent struct {
	Address util.Uint160
}

// RemovedEvent represents "Removed" event emitted by the contract.
type RemovedEvent struct {
	Address util.Uint160
}

// SwappedEvent represents "Swapped" event emitted by the contract.
type SwappedEvent struct {
	OldAddress util.Uint160
	NewAddress util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Count invokes `count` method of contract.
func (c *ContractReader) Count() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "count"))
}

// GetAddresses invokes `getAddresses` method of contract.
func (c *ContractReader) GetAddresses() ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "getAddresses"))
}

// IsMember invokes `isMember` method of contract.
func (c *ContractReader) IsMember(addr util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isMember", addr))
}

// Sentinel invokes `sentinel` method of contract.
func (c *ContractReader) Sentinel() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "sentinel"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Insert creates a transaction invoking `insert` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Insert(newItem util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "insert", newItem)
}

// InsertTransaction creates a transaction invoking `insert` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InsertTransaction(newItem util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "insert", newItem)
}

// InsertUnsigned creates a transaction invoking `insert` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InsertUnsigned(newItem util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "insert", nil, newItem)
}

// Remove creates a transaction invoking `remove` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Remove(prevItem util.Uint160, item util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "remove", prevItem, item)
}

// RemoveTransaction creates a transaction invoking `remove` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveTransaction(prevItem util.Uint160, item util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "remove", prevItem, item)
}

// RemoveUnsigned creates a transaction invoking `remove` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RemoveUnsigned(prevItem util.Uint160, item util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "remove", nil, prevItem, item)
}

// Swap creates a transaction invoking `swap` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Swap(prevItem util.Uint160, oldItem util.Uint160, newItem util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "swap", prevItem, oldItem, newItem)
}

// SwapTransaction creates a transaction invoking `swap` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SwapTransaction(prevItem util.Uint160, oldItem util.Uint160, newItem util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "swap", prevItem, oldItem, newItem)
}

// SwapUnsigned creates a transaction invoking `swap` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SwapUnsigned(prevItem util.Uint160, oldItem util.Uint160, newItem util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "swap", nil, prevItem, oldItem, newItem)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// InsertedEventsFromApplicationLog retrieves a set of all emitted events
// with "Inserted" name from the provided [result.ApplicationLog].
func InsertedEventsFromApplicationLog(log *result.ApplicationLog) ([]*InsertedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*InsertedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Inserted" {
				continue
			}
			event := new(InsertedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize InsertedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to InsertedEvent or
// returns an error if it's not possible to do to so.
func (e *InsertedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 1)
	if err != nil {
		return err
	}

	e.Address, err = uint160FromItem(arr[0])
	if err != nil {
		return fmt.Errorf("field Address: %w", err)
	}

	return nil
}

// RemovedEventsFromApplicationLog retrieves a set of all emitted events
// with "Removed" name from the provided [result.ApplicationLog].
func RemovedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RemovedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RemovedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Removed" {
				continue
			}
			event := new(RemovedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RemovedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RemovedEvent or
// returns an error if it's not possible to do to so.
func (e *RemovedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 1)
	if err != nil {
		return err
	}

	e.Address, err = uint160FromItem(arr[0])
	if err != nil {
		return fmt.Errorf("field Address: %w", err)
	}

	return nil
}

// SwappedEventsFromApplicationLog retrieves a set of all emitted events
// with "Swapped" name from the provided [result.ApplicationLog].
func SwappedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SwappedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SwappedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Swapped" {
				continue
			}
			event := new(SwappedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SwappedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SwappedEvent or
// returns an error if it's not possible to do to so.
func (e *SwappedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.OldAddress, err = uint160FromItem(arr[0])
	if err != nil {
		return fmt.Errorf("field OldAddress: %w", err)
	}

	e.NewAddress, err = uint160FromItem(arr[1])
	if err != nil {
		return fmt.Errorf("field NewAddress: %w", err)
	}

	return nil
}

func eventFields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}
	return arr, nil
}

func uint160FromItem(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}
