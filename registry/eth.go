package registry

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"namespace-tui/rpc"
	"namespace-tui/wallet"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// CreateFee is the fixed fee for deploying a new TLD through the factory,
// 0.01 of the native currency.
var CreateFee = big.NewInt(10_000_000_000_000_000)

const factoryABIJSON = `[
	{"inputs":[],"name":"getAllDomains","outputs":[{"components":[{"internalType":"string","name":"tld","type":"string"},{"internalType":"address","name":"domainContract","type":"address"}],"internalType":"struct DomainFactory.Domain[]","name":"","type":"tuple[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"string","name":"tld","type":"string"}],"name":"createDomain","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[],"name":"withdraw","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

const namespaceABIJSON = `[
	{"inputs":[],"name":"getAllNames","outputs":[{"internalType":"string[]","name":"","type":"string[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"string","name":"","type":"string"}],"name":"records","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"string","name":"","type":"string"}],"name":"domains","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"string","name":"name","type":"string"}],"name":"register","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

// EthLedger implements Ledger and Submitter against the deployed contracts.
// Reads go straight to the chain RPC endpoint; writes are handed to the wallet
// provider, which owns signing and nonce management. Submitted calls are
// remembered so a reverted transaction can be replayed as an eth_call to
// recover its revert reason.
type EthLedger struct {
	client   *rpc.Client
	provider wallet.Provider
	factory  common.Address

	factoryABI   abi.ABI
	namespaceABI abi.ABI

	pollEvery time.Duration

	mu        sync.Mutex
	submitted map[string]ethereum.CallMsg
}

func NewEthLedger(client *rpc.Client, provider wallet.Provider, factory string) (*EthLedger, error) {
	fabi, err := abi.JSON(strings.NewReader(factoryABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse factory abi: %w", err)
	}
	nabi, err := abi.JSON(strings.NewReader(namespaceABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse namespace abi: %w", err)
	}
	return &EthLedger{
		client:       client,
		provider:     provider,
		factory:      common.HexToAddress(factory),
		factoryABI:   fabi,
		namespaceABI: nabi,
		pollEvery:    2 * time.Second,
		submitted:    make(map[string]ethereum.CallMsg),
	}, nil
}

func (l *EthLedger) call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()
	return l.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

func (l *EthLedger) TopLevelDomains(ctx context.Context) ([]TopLevelEntry, error) {
	data, err := l.factoryABI.Pack("getAllDomains")
	if err != nil {
		return nil, err
	}
	raw, err := l.call(ctx, l.factory, data)
	if err != nil {
		return nil, fmt.Errorf("getAllDomains: %w", err)
	}

	out, err := l.factoryABI.Unpack("getAllDomains", raw)
	if err != nil {
		return nil, fmt.Errorf("decode getAllDomains: %w", err)
	}
	domains := *abi.ConvertType(out[0], new([]struct {
		Tld            string         `json:"tld"`
		DomainContract common.Address `json:"domainContract"`
	})).(*[]struct {
		Tld            string         `json:"tld"`
		DomainContract common.Address `json:"domainContract"`
	})

	entries := make([]TopLevelEntry, len(domains))
	for i, d := range domains {
		entries[i] = TopLevelEntry{TLD: d.Tld, Contract: d.DomainContract.Hex(), CreatedIndex: i}
	}
	return entries, nil
}

func (l *EthLedger) Names(ctx context.Context, contract string) ([]string, error) {
	data, err := l.namespaceABI.Pack("getAllNames")
	if err != nil {
		return nil, err
	}
	raw, err := l.call(ctx, common.HexToAddress(contract), data)
	if err != nil {
		return nil, fmt.Errorf("getAllNames: %w", err)
	}

	out, err := l.namespaceABI.Unpack("getAllNames", raw)
	if err != nil {
		return nil, fmt.Errorf("decode getAllNames: %w", err)
	}
	return *abi.ConvertType(out[0], new([]string)).(*[]string), nil
}

func (l *EthLedger) Record(ctx context.Context, contract, name string) (string, error) {
	data, err := l.namespaceABI.Pack("records", name)
	if err != nil {
		return "", err
	}
	raw, err := l.call(ctx, common.HexToAddress(contract), data)
	if err != nil {
		return "", fmt.Errorf("records(%s): %w", name, err)
	}

	out, err := l.namespaceABI.Unpack("records", raw)
	if err != nil {
		return "", fmt.Errorf("decode records(%s): %w", name, err)
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (l *EthLedger) Owner(ctx context.Context, contract, name string) (string, error) {
	data, err := l.namespaceABI.Pack("domains", name)
	if err != nil {
		return "", err
	}
	raw, err := l.call(ctx, common.HexToAddress(contract), data)
	if err != nil {
		return "", fmt.Errorf("domains(%s): %w", name, err)
	}

	out, err := l.namespaceABI.Unpack("domains", raw)
	if err != nil {
		return "", fmt.Errorf("decode domains(%s): %w", name, err)
	}
	addr := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return addr.Hex(), nil
}

func (l *EthLedger) SubmitCreate(ctx context.Context, from, tld string, fee *big.Int) (string, error) {
	data, err := l.factoryABI.Pack("createDomain", tld)
	if err != nil {
		return "", err
	}
	return l.send(ctx, from, l.factory, fee, data)
}

func (l *EthLedger) SubmitRegister(ctx context.Context, from, contract, name string) (string, error) {
	data, err := l.namespaceABI.Pack("register", name)
	if err != nil {
		return "", err
	}
	return l.send(ctx, from, common.HexToAddress(contract), nil, data)
}

func (l *EthLedger) SubmitWithdraw(ctx context.Context, from string) (string, error) {
	data, err := l.factoryABI.Pack("withdraw")
	if err != nil {
		return "", err
	}
	return l.send(ctx, from, l.factory, nil, data)
}

func (l *EthLedger) send(ctx context.Context, from string, to common.Address, value *big.Int, data []byte) (string, error) {
	hash, err := l.provider.SendTransaction(ctx, wallet.TxRequest{
		From:  from,
		To:    to.Hex(),
		Value: value,
		Data:  data,
	})
	if err != nil {
		return "", err
	}

	fromAddr := common.HexToAddress(from)
	l.mu.Lock()
	l.submitted[hash] = ethereum.CallMsg{From: fromAddr, To: &to, Value: value, Data: data}
	l.mu.Unlock()
	return hash, nil
}

// WaitInclusion polls for the receipt until the transaction lands. For a
// failed status the original call is replayed at the inclusion block to
// recover the revert reason.
func (l *EthLedger) WaitInclusion(ctx context.Context, hash string) (Inclusion, error) {
	txHash := common.HexToHash(hash)

	var receipt *types.Receipt
	err := retry.Do(
		func() error {
			r, err := l.client.TransactionReceipt(ctx, txHash)
			if err != nil {
				return err // not yet included, keep polling
			}
			receipt = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(l.pollEvery),
		retry.DelayType(retry.FixedDelay),
	)
	if err != nil {
		return Inclusion{Hash: hash}, fmt.Errorf("await inclusion of %s: %w", hash, err)
	}

	inc := Inclusion{Hash: hash, Succeeded: receipt.Status == types.ReceiptStatusSuccessful}
	if !inc.Succeeded {
		inc.RevertReason = l.revertReason(ctx, txHash, receipt.BlockNumber)
	}

	l.mu.Lock()
	delete(l.submitted, hash)
	l.mu.Unlock()
	return inc, nil
}

func (l *EthLedger) revertReason(ctx context.Context, hash common.Hash, block *big.Int) string {
	l.mu.Lock()
	msg, ok := l.submitted[hash.Hex()]
	l.mu.Unlock()
	if !ok {
		return ""
	}

	_, err := l.client.CallContract(ctx, msg, block)
	if err == nil {
		return ""
	}

	var dataErr gethrpc.DataError
	if errors.As(err, &dataErr) {
		if raw, ok := dataErr.ErrorData().(string); ok {
			if b, decErr := hexutil.Decode(raw); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(b); unpackErr == nil {
					return reason
				}
			}
		}
	}
	return err.Error()
}
