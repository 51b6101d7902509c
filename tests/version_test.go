package tests

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/nspcc-dev/neofs-addrlist/common"
	"github.com/stretchr/testify/require"
)

// readVersion parses semantic version from the VERSION file into the
// numeric form used by contracts.
func readVersion(t *testing.T) int {
	data, err := os.ReadFile("../VERSION")
	require.NoError(t, err)

	parts := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(data), "v")), ".")
	require.Len(t, parts, 3, "VERSION must be vMAJOR.MINOR.PATCH")

	res := 0
	for i := range parts {
		n, err := strconv.Atoi(parts[i])
		require.NoError(t, err)
		require.Less(t, n, 1_000, "version component %d overflows", i)
		res = res*1_000 + n
	}

	return res
}

func TestVersion(t *testing.T) {
	v := readVersion(t)

	require.Equal(t, common.Version, v,
		"version from common package is different from the one in VERSION file")
	require.Less(t, common.PrevVersion, common.Version)

	c := newAddrListInvoker(t)
	c.Invoke(t, v, "version")
}
