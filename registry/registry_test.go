package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neofs-addrlist/contracts/addrlist/addrlistconst"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var self = util.Uint160{0xff, 0xee, 0xdd}

func addr(b byte) util.Uint160 {
	return util.Uint160{0x10, b}
}

func newTestRegistry(t *testing.T, initial ...util.Uint160) *Registry {
	r, err := New(self, initial, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return r
}

func requireState(t *testing.T, r *Registry, expected ...util.Uint160) {
	if expected == nil {
		expected = []util.Uint160{}
	}
	require.Equal(t, expected, r.Addresses())
	require.Equal(t, len(expected), r.Count())
	require.NoError(t, r.Check())
}

func TestSentinel(t *testing.T) {
	require.Equal(t, []byte(addrlistconst.SentinelAddress), Sentinel.BytesBE())
	require.Equal(t, []byte(addrlistconst.ZeroAddress), Zero.BytesBE())
}

func TestNew(t *testing.T) {
	a, b, c := addr(1), addr(2), addr(3)

	t.Run("empty", func(t *testing.T) {
		r := newTestRegistry(t)
		requireState(t, r)
		require.Equal(t, self, r.Self())
	})

	t.Run("keeps order", func(t *testing.T) {
		requireState(t, newTestRegistry(t, a, b, c), a, b, c)
	})

	for _, tc := range []struct {
		name    string
		initial []util.Uint160
		kind    error
	}{
		{name: "zero", initial: []util.Uint160{a, Zero}, kind: ErrInvalidAddress},
		{name: "sentinel", initial: []util.Uint160{Sentinel}, kind: ErrInvalidAddress},
		{name: "self", initial: []util.Uint160{a, b, self}, kind: ErrInvalidAddress},
		{name: "adjacent duplicate", initial: []util.Uint160{a, a}, kind: ErrDuplicateAddress},
		{name: "duplicate", initial: []util.Uint160{a, b, c, a}, kind: ErrDuplicateAddress},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(self, tc.initial)
			require.ErrorIs(t, err, ErrInvalidInitialSet)
			require.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestScenario(t *testing.T) {
	a, b, c, d, e := addr(1), addr(2), addr(3), addr(4), addr(5)

	r := newTestRegistry(t, a, b, c)
	requireState(t, r, a, b, c)

	require.NoError(t, r.Insert(d))
	requireState(t, r, d, a, b, c)

	require.NoError(t, r.Remove(a, b))
	requireState(t, r, d, a, c)

	require.NoError(t, r.Swap(d, a, e))
	requireState(t, r, d, e, c)
	require.False(t, r.IsMember(a))
	require.True(t, r.IsMember(e))

	t.Run("head", func(t *testing.T) {
		require.NoError(t, r.Swap(Sentinel, d, a))
		requireState(t, r, a, e, c)

		require.NoError(t, r.Remove(Sentinel, a))
		requireState(t, r, e, c)
	})

	t.Run("tail", func(t *testing.T) {
		require.NoError(t, r.Remove(e, c))
		requireState(t, r, e)

		require.NoError(t, r.Remove(Sentinel, e))
		requireState(t, r)

		require.NoError(t, r.Insert(c))
		requireState(t, r, c)
	})
}

func TestIsMember(t *testing.T) {
	a := addr(1)
	r := newTestRegistry(t, a)

	require.True(t, r.IsMember(a))
	require.False(t, r.IsMember(addr(2)))
	require.False(t, r.IsMember(Zero))
	require.False(t, r.IsMember(Sentinel))
	require.False(t, r.IsMember(self))
}

func TestRejected(t *testing.T) {
	a, b, c, d := addr(1), addr(2), addr(3), addr(4)

	for _, tc := range []struct {
		name   string
		op     func(*Registry) error
		kind   error
		reason string
	}{
		{"insert zero", func(r *Registry) error { return r.Insert(Zero) },
			ErrInvalidAddress, addrlistconst.ErrNewAddressInvalid},
		{"insert sentinel", func(r *Registry) error { return r.Insert(Sentinel) },
			ErrInvalidAddress, addrlistconst.ErrNewAddressInvalid},
		{"insert self", func(r *Registry) error { return r.Insert(self) },
			ErrInvalidAddress, addrlistconst.ErrNewAddressInvalid},
		{"insert member", func(r *Registry) error { return r.Insert(b) },
			ErrDuplicateAddress, addrlistconst.ErrDuplicateAddress},
		{"remove zero", func(r *Registry) error { return r.Remove(Zero, Zero) },
			ErrInvalidAddress, addrlistconst.ErrRemoveInvalid},
		{"remove sentinel", func(r *Registry) error { return r.Remove(Zero, Sentinel) },
			ErrInvalidAddress, addrlistconst.ErrRemoveInvalid},
		{"remove with wrong previous", func(r *Registry) error { return r.Remove(a, c) },
			ErrIndexMismatch, addrlistconst.ErrRemoveIndexMismatch},
		{"remove head with wrong previous", func(r *Registry) error { return r.Remove(c, a) },
			ErrIndexMismatch, addrlistconst.ErrRemoveIndexMismatch},
		{"remove non-member", func(r *Registry) error { return r.Remove(c, d) },
			ErrIndexMismatch, addrlistconst.ErrRemoveIndexMismatch},
		{"remove with non-member previous", func(r *Registry) error { return r.Remove(d, a) },
			ErrIndexMismatch, addrlistconst.ErrRemoveIndexMismatch},
		{"swap to zero", func(r *Registry) error { return r.Swap(a, b, Zero) },
			ErrInvalidAddress, addrlistconst.ErrNewAddressInvalid},
		{"swap to sentinel", func(r *Registry) error { return r.Swap(a, b, Sentinel) },
			ErrInvalidAddress, addrlistconst.ErrNewAddressInvalid},
		{"swap to self", func(r *Registry) error { return r.Swap(a, b, self) },
			ErrInvalidAddress, addrlistconst.ErrNewAddressInvalid},
		{"swap to member", func(r *Registry) error { return r.Swap(b, c, a) },
			ErrDuplicateAddress, addrlistconst.ErrSwapDuplicate},
		{"swap zero", func(r *Registry) error { return r.Swap(b, Zero, d) },
			ErrInvalidAddress, addrlistconst.ErrSwapOldInvalid},
		{"swap sentinel", func(r *Registry) error { return r.Swap(b, Sentinel, d) },
			ErrInvalidAddress, addrlistconst.ErrSwapOldInvalid},
		{"swap with wrong previous", func(r *Registry) error { return r.Swap(a, c, d) },
			ErrIndexMismatch, addrlistconst.ErrSwapIndexMismatch},
		// first violated check wins
		{"swap invalid new and wrong previous", func(r *Registry) error { return r.Swap(a, c, Zero) },
			ErrInvalidAddress, addrlistconst.ErrNewAddressInvalid},
		{"swap duplicate and invalid old", func(r *Registry) error { return r.Swap(a, Zero, c) },
			ErrDuplicateAddress, addrlistconst.ErrSwapDuplicate},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRegistry(t, a, b, c)

			err := tc.op(r)
			require.ErrorIs(t, err, tc.kind)
			require.ErrorContains(t, err, tc.reason)

			requireState(t, r, a, b, c)
		})
	}
}

func TestKindOf(t *testing.T) {
	for _, reason := range Reasons() {
		kind := KindOf(reason)
		require.NotNil(t, kind, reason)
		require.True(t, errors.Is(newError(reason), kind))
	}

	require.Nil(t, KindOf("unknown"))
	require.Len(t, Reasons(), 7)
}

func TestPredecessor(t *testing.T) {
	a, b, c := addr(1), addr(2), addr(3)
	snapshot := []util.Uint160{a, b, c}

	prev, ok := Predecessor(snapshot, a)
	require.True(t, ok)
	require.Equal(t, Sentinel, prev)

	prev, ok = Predecessor(snapshot, c)
	require.True(t, ok)
	require.Equal(t, b, prev)

	_, ok = Predecessor(snapshot, addr(4))
	require.False(t, ok)

	_, ok = Predecessor(nil, a)
	require.False(t, ok)
}

func TestCheck(t *testing.T) {
	a, b := addr(1), addr(2)

	for _, tc := range []struct {
		name  string
		next  map[util.Uint160]util.Uint160
		count int
	}{
		{"missing head", map[util.Uint160]util.Uint160{a: Sentinel}, 1},
		{"short", map[util.Uint160]util.Uint160{Sentinel: a, a: Sentinel}, 2},
		{"long", map[util.Uint160]util.Uint160{Sentinel: a, a: b, b: Sentinel}, 1},
		{"cycle", map[util.Uint160]util.Uint160{Sentinel: a, a: b, b: a}, 3},
		{"dangling", map[util.Uint160]util.Uint160{Sentinel: a, a: b}, 2},
		{"detached", map[util.Uint160]util.Uint160{Sentinel: a, a: Sentinel, b: Sentinel}, 1},
		{"zero member", map[util.Uint160]util.Uint160{Sentinel: Zero, Zero: Sentinel}, 1},
		{"self member", map[util.Uint160]util.Uint160{Sentinel: self, self: Sentinel}, 1},
		{"negative count", map[util.Uint160]util.Uint160{Sentinel: Sentinel}, -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := newRegistry(self, 0, nil)
			r.next = tc.next
			r.count = tc.count

			require.ErrorIs(t, r.Check(), ErrCorrupted)
		})
	}
}

func TestConcurrentAccess(t *testing.T) {
	const workers, perWorker = 8, 32

	r := newTestRegistry(t)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				require.NoError(t, r.Insert(util.Uint160{0x20, byte(w), byte(i)}))
				_ = r.Addresses()
				_ = r.IsMember(util.Uint160{0x20, byte(w), byte(i)})
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, r.Count())
	require.Len(t, r.Addresses(), workers*perWorker)
	require.NoError(t, r.Check())
}
