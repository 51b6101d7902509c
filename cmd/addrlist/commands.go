package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/neofs-addrlist/registry"
	"github.com/nspcc-dev/neofs-addrlist/rpc/addrlist"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type waiter interface {
	Wait(h util.Uint256, vub uint32, err error) (*state.AppExecResult, error)
}

// environment carries everything commands need. It is built from Config by
// newEnvironment.
type environment struct {
	log  *zap.Logger
	out  io.Writer
	hash util.Uint160

	reader *addrlist.ContractReader
	// nil for read-only commands
	contract *addrlist.Contract
	waiter   waiter

	iterateStorage func(f func(key, value []byte) error) error
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newEnvironment(ctx context.Context, out io.Writer, c Config, writable bool) (*environment, func(), error) {
	log, err := newLogger(c.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	hash, err := parseHash(c.Contract)
	if err != nil {
		return nil, nil, fmt.Errorf("contract: %w", err)
	}

	var acc *wallet.Account
	if writable {
		if c.Wallet.Path == "" {
			return nil, nil, errors.New("missing wallet")
		}

		acc, err = openAccount(c.Wallet)
		if err != nil {
			return nil, nil, err
		}
	}

	b, err := newRemoteBlockchain(ctx, c.RPC, acc, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init remote blockchain: %w", err)
	}

	e := &environment{
		log:    log,
		out:    out,
		hash:   hash,
		reader: addrlist.NewReader(b.actor, hash),
		waiter: b.actor,
		iterateStorage: func(f func(key, value []byte) error) error {
			return b.iterateContractStorage(hash, f)
		},
	}
	if writable {
		e.contract = addrlist.New(b.actor, hash)
	}

	return e, func() {
		b.close()
		_ = log.Sync()
	}, nil
}

// withEnvironment makes cobra handler running f over the environment built
// from the global configuration.
func withEnvironment(writable bool, f func(e *environment, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, closeEnv, err := newEnvironment(cmd.Context(), cmd.OutOrStdout(), cfg, writable)
		if err != nil {
			return err
		}
		defer closeEnv()

		return f(e, args)
	}
}

func parseArgs(args []string) ([]util.Uint160, error) {
	res := make([]util.Uint160, len(args))
	for i := range args {
		var err error
		res[i], err = parseHash(args[i])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func runList(e *environment, _ []string) error {
	addrs, err := e.reader.GetAddresses()
	if err != nil {
		return fmt.Errorf("get addresses: %w", err)
	}

	for i := range addrs {
		fmt.Fprintln(e.out, formatHash(addrs[i]))
	}

	return nil
}

func runCount(e *environment, _ []string) error {
	n, err := e.reader.Count()
	if err != nil {
		return fmt.Errorf("get count: %w", err)
	}

	fmt.Fprintln(e.out, n)
	return nil
}

func runMember(e *environment, args []string) error {
	addrs, err := parseArgs(args)
	if err != nil {
		return err
	}

	ok, err := e.reader.IsMember(addrs[0])
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}

	fmt.Fprintln(e.out, ok)
	return nil
}

func runSentinel(e *environment, _ []string) error {
	s, err := e.reader.Sentinel()
	if err != nil {
		return fmt.Errorf("get sentinel: %w", err)
	}

	fmt.Fprintln(e.out, formatHash(s))
	return nil
}

func runInsert(e *environment, args []string) error {
	addrs, err := parseArgs(args)
	if err != nil {
		return err
	}

	return e.await("insert", addrs, func() (util.Uint256, uint32, error) {
		return e.contract.Insert(addrs[0])
	})
}

func runRemove(e *environment, prevFlag string, args []string) error {
	addrs, err := parseArgs(args)
	if err != nil {
		return err
	}

	prev, err := e.resolvePrev(prevFlag, addrs[0])
	if err != nil {
		return err
	}

	return e.await("remove", addrs, func() (util.Uint256, uint32, error) {
		return e.contract.Remove(prev, addrs[0])
	})
}

func runSwap(e *environment, prevFlag string, args []string) error {
	addrs, err := parseArgs(args)
	if err != nil {
		return err
	}

	prev, err := e.resolvePrev(prevFlag, addrs[0])
	if err != nil {
		return err
	}

	return e.await("swap", addrs, func() (util.Uint256, uint32, error) {
		return e.contract.Swap(prev, addrs[0], addrs[1])
	})
}

// runVerify rebuilds the list from raw contract storage and checks list
// invariants.
func runVerify(e *environment, _ []string) error {
	l := registry.NewLoader(e.hash)

	err := e.iterateStorage(l.Write)
	if err != nil {
		return fmt.Errorf("read contract storage: %w", err)
	}

	r, err := l.Registry(registry.WithLogger(e.log))
	if err != nil {
		return fmt.Errorf("verify contract storage: %w", err)
	}

	addrs, err := e.reader.GetAddresses()
	if err != nil {
		return fmt.Errorf("get addresses: %w", err)
	}

	// storage is read at the latest block, the list could be changed since
	if !slices.Equal(addrs, r.Addresses()) {
		e.log.Warn("contract storage differs from the current list, it may have been changed after the storage was read",
			zap.Int("storage count", r.Count()), zap.Int("current count", len(addrs)))
	}

	fmt.Fprintf(e.out, "OK: %d members\n", r.Count())
	return nil
}

// resolvePrev decodes the predecessor given by user or derives it from the
// current list.
func (e *environment) resolvePrev(prevFlag string, item util.Uint160) (util.Uint160, error) {
	if prevFlag != "" {
		return parseHash(prevFlag)
	}

	// reserved addresses are never listed, the contract rejects them with
	// its own reason whatever the predecessor is
	if item == registry.Zero || item == registry.Sentinel {
		return registry.Sentinel, nil
	}

	prev, err := addrlist.FindPredecessor(e.reader, item)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("find predecessor: %w", err)
	}

	e.log.Debug("predecessor resolved", zap.String("item", item.StringLE()), zap.String("prev", prev.StringLE()))
	return prev, nil
}

// await sends transaction and waits for its acceptance. Contract failures
// are classified with addrlist.ClassifyError.
func (e *environment) await(op string, addrs []util.Uint160, send func() (util.Uint256, uint32, error)) error {
	res, err := e.waiter.Wait(send())
	if err != nil {
		return fmt.Errorf("%s: %w", op, addrlist.ClassifyError(err))
	}

	if res.VMState != vmstate.Halt {
		return fmt.Errorf("%s: %w", op, addrlist.ClassifyError(errors.New(res.FaultException)))
	}

	strs := make([]string, len(addrs))
	for i := range addrs {
		strs[i] = addrs[i].StringLE()
	}

	e.log.Info("transaction accepted",
		zap.String("operation", op),
		zap.String("tx", res.Container.StringLE()),
		zap.Strings("addresses", strs))
	fmt.Fprintln(e.out, res.Container.StringLE())

	return nil
}

func init() {
	var removePrev, swapPrev string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List addresses from the head to the tail",
		Args:  cobra.NoArgs,
		RunE:  withEnvironment(false, runList),
	}

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Print number of addresses in the list",
		Args:  cobra.NoArgs,
		RunE:  withEnvironment(false, runCount),
	}

	memberCmd := &cobra.Command{
		Use:   "member <address>",
		Short: "Check whether address is in the list",
		Args:  cobra.ExactArgs(1),
		RunE:  withEnvironment(false, runMember),
	}

	sentinelCmd := &cobra.Command{
		Use:   "sentinel",
		Short: "Print sentinel address used as predecessor of the list head",
		Args:  cobra.NoArgs,
		RunE:  withEnvironment(false, runSentinel),
	}

	insertCmd := &cobra.Command{
		Use:   "insert <address>",
		Short: "Insert address to the head of the list",
		Args:  cobra.ExactArgs(1),
		RunE:  withEnvironment(true, runInsert),
	}

	removeCmd := &cobra.Command{
		Use:   "remove <address>",
		Short: "Remove address from the list",
		Long: `Remove address from the list.

Predecessor of the address is read from the current list unless --prev is set.`,
		Args: cobra.ExactArgs(1),
		RunE: withEnvironment(true, func(e *environment, args []string) error {
			return runRemove(e, removePrev, args)
		}),
	}
	removeCmd.Flags().StringVar(&removePrev, "prev", "", "address preceding the removed one (sentinel for the head)")

	swapCmd := &cobra.Command{
		Use:   "swap <old> <new>",
		Short: "Replace address in the list keeping its position",
		Long: `Replace address in the list keeping its position.

Predecessor of the old address is read from the current list unless --prev is set.`,
		Args: cobra.ExactArgs(2),
		RunE: withEnvironment(true, func(e *environment, args []string) error {
			return runSwap(e, swapPrev, args)
		}),
	}
	swapCmd.Flags().StringVar(&swapPrev, "prev", "", "address preceding the old one (sentinel for the head)")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check list consistency in the raw contract storage",
		Args:  cobra.NoArgs,
		RunE:  withEnvironment(false, runVerify),
	}

	rootCmd.AddCommand(listCmd, countCmd, memberCmd, sentinelCmd, insertCmd, removeCmd, swapCmd, verifyCmd)
}
