package addrlist

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
	"github.com/nspcc-dev/neofs-addrlist/common"
	"github.com/nspcc-dev/neofs-addrlist/contracts/addrlist/addrlistconst"
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	initial := []interop.Hash160{}
	if data != nil {
		args := data.([]any)
		if len(args) > 0 && args[0] != nil {
			initial = args[0].([]interop.Hash160)
		}
	}

	ctx := storage.GetContext()
	self := runtime.GetExecutingScriptHash()

	current := sentinel()
	for i := range initial {
		addr := initial[i]
		if !isValidNew(addr, self) {
			panic(addrlistconst.ErrNewAddressInvalid)
		}
		// current is linked on the next iteration only
		if equals(addr, current) || storage.Get(ctx, nextKey(addr)) != nil {
			panic(addrlistconst.ErrDuplicateAddress)
		}

		storage.Put(ctx, nextKey(current), addr)
		current = addr
	}

	storage.Put(ctx, nextKey(current), sentinel())
	storage.Put(ctx, []byte{addrlistconst.CountKey}, len(initial))

	runtime.Log("addrlist contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("addrlist contract updated")
}

// Sentinel returns the reserved address anchoring the list. It is used as
// a previous item when operating on the list head.
func Sentinel() interop.Hash160 {
	return sentinel()
}

// IsMember returns true if addr is in the list.
func IsMember(addr interop.Hash160) bool {
	if len(addr) != interop.Hash160Len || equals(addr, sentinel()) {
		return false
	}

	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, nextKey(addr)) != nil
}

// Count returns the number of list members.
func Count() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{addrlistconst.CountKey}).(int)
}

// GetAddresses returns all list members from the head to the tail.
func GetAddresses() []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()

	res := []interop.Hash160{}
	current := getNext(ctx, sentinel())
	for !equals(current, sentinel()) {
		res = append(res, current)
		current = getNext(ctx, current)
	}

	return res
}

// Insert adds newItem to the head of the list. It can be invoked only by
// committee.
//
// Produces Inserted notification.
func Insert(newItem interop.Hash160) {
	common.CheckCommitteeWitness()

	ctx := storage.GetContext()
	if !isValidNew(newItem, runtime.GetExecutingScriptHash()) {
		panic(addrlistconst.ErrNewAddressInvalid)
	}
	if storage.Get(ctx, nextKey(newItem)) != nil {
		panic(addrlistconst.ErrDuplicateAddress)
	}

	storage.Put(ctx, nextKey(newItem), getNext(ctx, sentinel()))
	storage.Put(ctx, nextKey(sentinel()), newItem)
	addCount(ctx, 1)

	runtime.Notify("Inserted", newItem)
}

// Remove removes item from the list. prevItem must be the member directly
// preceding item or sentinel if item is the head. It can be invoked only by
// committee.
//
// Produces Removed notification.
func Remove(prevItem, item interop.Hash160) {
	common.CheckCommitteeWitness()

	ctx := storage.GetContext()
	if isReserved(item) {
		panic(addrlistconst.ErrRemoveInvalid)
	}
	if !equals(getNext(ctx, prevItem), item) {
		panic(addrlistconst.ErrRemoveIndexMismatch)
	}

	storage.Put(ctx, nextKey(prevItem), getNext(ctx, item))
	storage.Delete(ctx, nextKey(item))
	addCount(ctx, -1)

	runtime.Notify("Removed", item)
}

// Swap replaces oldItem with newItem keeping its position. prevItem must be
// the member directly preceding oldItem or sentinel if oldItem is the head.
// It can be invoked only by committee.
//
// Produces Swapped notification.
func Swap(prevItem, oldItem, newItem interop.Hash160) {
	common.CheckCommitteeWitness()

	ctx := storage.GetContext()
	if !isValidNew(newItem, runtime.GetExecutingScriptHash()) {
		panic(addrlistconst.ErrNewAddressInvalid)
	}
	if storage.Get(ctx, nextKey(newItem)) != nil {
		panic(addrlistconst.ErrSwapDuplicate)
	}
	if isReserved(oldItem) {
		panic(addrlistconst.ErrSwapOldInvalid)
	}
	if !equals(getNext(ctx, prevItem), oldItem) {
		panic(addrlistconst.ErrSwapIndexMismatch)
	}

	storage.Put(ctx, nextKey(newItem), getNext(ctx, oldItem))
	storage.Put(ctx, nextKey(prevItem), newItem)
	storage.Delete(ctx, nextKey(oldItem))

	runtime.Notify("Swapped", oldItem, newItem)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func sentinel() interop.Hash160 {
	return interop.Hash160(addrlistconst.SentinelAddress)
}

// equals compares addresses by value. Values read from storage are Buffers,
// so interop.Hash160.Equals can not be used for them.
func equals(a, b interop.Hash160) bool {
	return util.Equals(string(a), string(b))
}

func nextKey(addr interop.Hash160) []byte {
	return append([]byte{addrlistconst.NextPrefix}, addr...)
}

// getNext returns nil for non-members.
func getNext(ctx storage.Context, addr interop.Hash160) interop.Hash160 {
	next := storage.Get(ctx, nextKey(addr))
	if next == nil {
		return nil
	}

	return next.(interop.Hash160)
}

func addCount(ctx storage.Context, delta int) {
	key := []byte{addrlistconst.CountKey}
	storage.Put(ctx, key, storage.Get(ctx, key).(int)+delta)
}

func isReserved(addr interop.Hash160) bool {
	return len(addr) != interop.Hash160Len ||
		equals(addr, interop.Hash160(addrlistconst.ZeroAddress)) ||
		equals(addr, sentinel())
}

func isValidNew(addr, self interop.Hash160) bool {
	return !isReserved(addr) && !equals(addr, self)
}
