/*
Package addrlist implements Address List contract which keeps an ordered set
of unique Hash160 addresses.

The list is singly linked through contract storage and anchored by a reserved
sentinel address (see [addrlistconst.SentinelAddress]) marking both its start
and its end. New members are prepended. Removal and replacement require the
caller to name the member directly preceding the target (or the sentinel for
the head), so every modification is verified against the current chain of
links instead of a position. Zero address, sentinel and the contract itself
can never become members.

Initial members are passed on deploy as the only element of the data array:

	[]any{[]util.Uint160{a, b, c}}

and keep the given order. Modifying methods can be invoked by committee only.

# Contract notifications

Inserted notification. This notification is produced when a new address is
added to the head of the list.

	Inserted
	  - name: address
	    type: Hash160

Removed notification. This notification is produced when an address is
removed from the list.

	Removed
	  - name: address
	    type: Hash160

Swapped notification. This notification is produced when a member is replaced
by a new address in place.

	Swapped
	  - name: oldAddress
	    type: Hash160
	  - name: newAddress
	    type: Hash160
*/
package addrlist

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'n' + <interop.Hash160> -> interop.Hash160
   address following the member (or sentinel for the last one);
   'n' + sentinel points to the list head (sentinel itself if the list is empty)
 - 'c' -> int
   number of list members
*/
