package registry

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neofs-addrlist/contracts/addrlist/addrlistconst"
	"github.com/stretchr/testify/require"
)

type storageItem struct {
	key, value []byte
}

func linkItem(from, to util.Uint160) storageItem {
	return storageItem{
		key:   append([]byte{addrlistconst.NextPrefix}, from.BytesBE()...),
		value: to.BytesBE(),
	}
}

func countItem(n int64) storageItem {
	return storageItem{
		key:   []byte{addrlistconst.CountKey},
		value: bigint.ToBytes(big.NewInt(n)),
	}
}

func load(t *testing.T, items ...storageItem) (*Registry, error) {
	l := NewLoader(self)
	for _, it := range items {
		if err := l.Write(it.key, it.value); err != nil {
			return nil, err
		}
	}
	return l.Registry()
}

func TestLoader(t *testing.T) {
	a, b, c := addr(1), addr(2), addr(3)

	t.Run("empty", func(t *testing.T) {
		r, err := load(t, countItem(0), linkItem(Sentinel, Sentinel))
		require.NoError(t, err)
		requireState(t, r)
	})

	t.Run("any order", func(t *testing.T) {
		r, err := load(t,
			linkItem(b, c),
			countItem(3),
			linkItem(c, Sentinel),
			linkItem(Sentinel, a),
			linkItem(a, b),
		)
		require.NoError(t, err)
		requireState(t, r, a, b, c)
		require.Equal(t, self, r.Self())

		require.NoError(t, r.Insert(addr(4)))
		requireState(t, r, addr(4), a, b, c)
	})

	t.Run("missing count", func(t *testing.T) {
		_, err := load(t, linkItem(Sentinel, Sentinel))
		require.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("count mismatch", func(t *testing.T) {
		_, err := load(t, countItem(2), linkItem(Sentinel, a), linkItem(a, Sentinel))
		require.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("negative count", func(t *testing.T) {
		_, err := load(t, countItem(-1))
		require.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := load(t, storageItem{key: []byte("x"), value: []byte{1}})
		require.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("short link value", func(t *testing.T) {
		_, err := load(t, storageItem{
			key:   append([]byte{addrlistconst.NextPrefix}, a.BytesBE()...),
			value: []byte{1, 2, 3},
		})
		require.ErrorIs(t, err, ErrCorrupted)
	})
}
