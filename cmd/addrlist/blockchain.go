package main

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// wrapper over rpcNeo providing blockchain services needed for addrlist
// commands.
type remoteBlockchain struct {
	log   *zap.Logger
	rpc   *rpcclient.Client
	actor *actor.Actor
}

// newRemoteBlockchain dials Neo RPC server and returns remoteBlockchain based
// on the opened connection. Transactions are signed by acc, random account
// is generated if acc is nil (enough for read-only commands).
func newRemoteBlockchain(ctx context.Context, c RPCConfig, acc *wallet.Account, log *zap.Logger) (*remoteBlockchain, error) {
	if acc == nil {
		var err error
		acc, err = wallet.NewAccount()
		if err != nil {
			return nil, fmt.Errorf("generate new Neo account: %w", err)
		}
	}

	cli, err := rpcclient.New(ctx, c.Endpoint, rpcclient.Options{
		DialTimeout:    c.DialTimeout,
		RequestTimeout: c.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = cli.Init()
	if err != nil {
		cli.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	act, err := actor.NewSimple(cli, acc)
	if err != nil {
		cli.Close()
		return nil, fmt.Errorf("init actor: %w", err)
	}

	log.Debug("connected to Neo RPC server",
		zap.String("endpoint", c.Endpoint), zap.String("account", acc.Address))

	return &remoteBlockchain{
		log:   log,
		rpc:   cli,
		actor: act,
	}, nil
}

// latestHeight returns height of the latest block by the number of blocks
// in the chain (genesis block has zero height).
func latestHeight(blockCount uint32) uint32 {
	return blockCount - 1
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// openAccount reads the wallet and decrypts the selected account.
func openAccount(c WalletConfig) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	h := w.GetChangeAddress()
	if c.Address != "" {
		h, err = address.StringToUint160(c.Address)
		if err != nil {
			return nil, fmt.Errorf("decode account address: %w", err)
		}
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s not found in wallet %s", address.Uint160ToString(h), c.Path)
	}

	err = acc.Decrypt(c.Password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}

	return acc, nil
}

// iterateContractStorage iterates over all storage items of the Neo smart
// contract referenced by given address and passes them into f.
// iterateContractStorage breaks on any f's error and returns it.
func (x *remoteBlockchain) iterateContractStorage(contract util.Uint160, f func(key, value []byte) error) error {
	nLatestBlock, err := x.actor.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get number of the latest block: %w", err)
	}

	height := latestHeight(nLatestBlock)

	stateRoot, err := x.rpc.GetStateRootByHeight(height)
	if err != nil {
		return fmt.Errorf("get state root at the latest block #%d: %w", height, err)
	}

	x.log.Debug("reading contract storage",
		zap.Uint32("height", height), zap.Stringer("root", stateRoot.Root))

	var start []byte

	for {
		res, err := x.rpc.FindStates(stateRoot.Root, contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("get historical storage items of the requested contract at state root '%s': %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return err
			}
		}

		if !res.Truncated {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}
