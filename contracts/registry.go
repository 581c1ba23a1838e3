package contracts

import (
	"sort"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Names of the contracts the scripts talk to.
const (
	Counter   = "counter"
	CW20Token = "cw20_token"
	Swap      = "swap"
	Oracle    = "oracle"
)

// Registry maps logical contract names to deployed addresses. It is
// read-only once built.
type Registry struct {
	prefix string
	addrs  map[string]string
}

// NewRegistry validates every address as bech32 with the given prefix.
func NewRegistry(addrs map[string]string, prefix string) (*Registry, error) {
	r := &Registry{
		prefix: prefix,
		addrs:  make(map[string]string, len(addrs)),
	}
	for name, addr := range addrs {
		addr = strings.TrimSpace(addr)
		if err := validateAddress(addr, prefix); err != nil {
			return nil, ErrInvalidAddress.Wrapf("contract %q: %s", name, err)
		}
		r.addrs[name] = addr
	}
	return r, nil
}

// Resolve returns the address registered under name.
func (r *Registry) Resolve(name string) (string, error) {
	addr, ok := r.addrs[name]
	if !ok {
		return "", ErrUnknownContract.Wrapf("%q", name)
	}
	return addr, nil
}

// Target resolves a registered name, or accepts nameOrAddress as is when it
// is a bech32 address with the registry's prefix.
func (r *Registry) Target(nameOrAddress string) (string, error) {
	if addr, ok := r.addrs[nameOrAddress]; ok {
		return addr, nil
	}
	if validateAddress(nameOrAddress, r.prefix) == nil {
		return nameOrAddress, nil
	}
	return "", ErrUnknownContract.Wrapf("%q is neither a registered contract nor a %s address", nameOrAddress, r.prefix)
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.addrs))
	for name := range r.addrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns a copy of the name to address mapping.
func (r *Registry) Entries() map[string]string {
	out := make(map[string]string, len(r.addrs))
	for k, v := range r.addrs {
		out[k] = v
	}
	return out
}

func validateAddress(addr, prefix string) error {
	bz, err := sdk.GetFromBech32(addr, prefix)
	if err != nil {
		return err
	}
	return sdk.VerifyAddressFormat(bz)
}
