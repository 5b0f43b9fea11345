package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"namespace-tui/apperrors"
	"namespace-tui/chains"

	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// DefaultBridgeURL is where desktop signer wallets expose their local
// JSON-RPC bridge.
const DefaultBridgeURL = "http://127.0.0.1:1248"

// EIP-1193 provider error codes.
const (
	codeUserRejected = 4001
	codeUnknownChain = 4902
)

// Bridge implements Provider over the JSON-RPC endpoint of a desktop signer
// wallet. Signing, key storage and the actual chain switch all happen inside
// the wallet; the bridge only forwards requests and translates error shapes
// into the apperrors taxonomy.
type Bridge struct {
	c   *gethrpc.Client
	url string

	pollEvery time.Duration

	mu       sync.Mutex
	handlers []func(uint64)
	lastID   uint64
	pollOnce sync.Once
	stop     chan struct{}
}

// DialBridge connects to the wallet bridge. A connection failure means no
// wallet is reachable, which surfaces as ErrNoWalletInstalled.
func DialBridge(ctx context.Context, url string) (*Bridge, error) {
	if url == "" {
		url = DefaultBridgeURL
	}
	c, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", apperrors.ErrNoWalletInstalled, url, err)
	}
	return &Bridge{
		c:         c,
		url:       url,
		pollEvery: 4 * time.Second,
		stop:      make(chan struct{}),
	}, nil
}

// URL returns the bridge endpoint.
func (b *Bridge) URL() string { return b.url }

func (b *Bridge) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := b.c.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, translateErr(err)
	}
	return accounts, nil
}

func (b *Bridge) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := b.c.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, translateErr(err)
	}
	return accounts, nil
}

func (b *Bridge) ChainID(ctx context.Context) (uint64, error) {
	var raw string
	if err := b.c.CallContext(ctx, &raw, "eth_chainId"); err != nil {
		return 0, translateErr(err)
	}
	return chains.ParseHexID(raw)
}

func (b *Bridge) SwitchChain(ctx context.Context, chainID uint64) error {
	params := struct {
		ChainID string `json:"chainId"`
	}{ChainID: chains.ChainProfile{ID: chainID}.Hex()}
	if err := b.c.CallContext(ctx, nil, "wallet_switchEthereumChain", params); err != nil {
		return translateErr(err)
	}
	return nil
}

func (b *Bridge) AddChain(ctx context.Context, profile chains.ChainProfile) error {
	params := struct {
		ChainID        string   `json:"chainId"`
		ChainName      string   `json:"chainName"`
		RPCUrls        []string `json:"rpcUrls"`
		NativeCurrency struct {
			Name     string `json:"name"`
			Symbol   string `json:"symbol"`
			Decimals uint8  `json:"decimals"`
		} `json:"nativeCurrency"`
		BlockExplorerUrls []string `json:"blockExplorerUrls"`
	}{
		ChainID:           profile.Hex(),
		ChainName:         profile.Name,
		RPCUrls:           profile.RPCURLs,
		BlockExplorerUrls: profile.ExplorerURLs,
	}
	params.NativeCurrency.Name = profile.Currency.Name
	params.NativeCurrency.Symbol = profile.Currency.Symbol
	params.NativeCurrency.Decimals = profile.Currency.Decimals

	if err := b.c.CallContext(ctx, nil, "wallet_addEthereumChain", params); err != nil {
		return translateErr(err)
	}
	return nil
}

func (b *Bridge) SendTransaction(ctx context.Context, tx TxRequest) (string, error) {
	params := struct {
		From  string `json:"from"`
		To    string `json:"to"`
		Value string `json:"value,omitempty"`
		Data  string `json:"data,omitempty"`
	}{
		From: tx.From,
		To:   tx.To,
	}
	if tx.Value != nil && tx.Value.Sign() > 0 {
		params.Value = hexutil.EncodeBig(tx.Value)
	}
	if len(tx.Data) > 0 {
		params.Data = hexutil.Encode(tx.Data)
	}

	var hash string
	if err := b.c.CallContext(ctx, &hash, "eth_sendTransaction", params); err != nil {
		return "", translateErr(err)
	}
	return hash, nil
}

// OnChainChanged registers a handler. The HTTP bridge has no push events, so
// the first registration starts a poller that watches eth_chainId.
func (b *Bridge) OnChainChanged(handler func(newChainID uint64)) {
	b.mu.Lock()
	b.handlers = append(b.handlers, handler)
	b.mu.Unlock()

	b.pollOnce.Do(func() {
		go b.pollChain()
	})
}

func (b *Bridge) Close() {
	close(b.stop)
	b.c.Close()
}

func (b *Bridge) pollChain() {
	ticker := time.NewTicker(b.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), b.pollEvery)
		id, err := b.ChainID(ctx)
		cancel()
		if err != nil {
			continue
		}

		b.mu.Lock()
		changed := b.lastID != 0 && b.lastID != id
		b.lastID = id
		handlers := b.handlers
		b.mu.Unlock()

		if changed {
			for _, h := range handlers {
				h(id)
			}
		}
	}
}

// translateErr maps the wallet's JSON-RPC error codes onto the closed error
// taxonomy so the rest of the core never inspects numeric codes.
func translateErr(err error) error {
	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case codeUserRejected:
			return fmt.Errorf("%w: %v", apperrors.ErrUserRejected, err)
		case codeUnknownChain:
			return fmt.Errorf("%w: %v", apperrors.ErrUnknownChain, err)
		}
		return err
	}
	// Anything that is not a JSON-RPC error is a transport failure.
	return fmt.Errorf("%w: %v", apperrors.ErrProviderDisconnected, err)
}
