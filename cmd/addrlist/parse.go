package main

import (
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// parseHash decodes Neo address or LE hex script hash with optional 0x prefix.
func parseHash(s string) (util.Uint160, error) {
	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("'%s' is neither Neo address nor script hash", s)
	}

	return h, nil
}

func formatHash(h util.Uint160) string {
	return address.Uint160ToString(h) + "\t" + h.StringLE()
}
