package flightsurety

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	"github.com/rs/zerolog"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/module"
)

const (
	DefaultRegisterGasLimit = uint64(6_700_000)
	DefaultSubmitGasLimit   = uint64(6_721_975)
)

// Backend is the subset of the ethereum client API used by the contract client.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// GasLimits are the gas limits of the transactions sent by the fleet.
type GasLimits struct {
	Register uint64
	Submit   uint64
}

// DefaultGasLimits returns the gas limits used by the reference deployment.
func DefaultGasLimits() GasLimits {
	return GasLimits{
		Register: DefaultRegisterGasLimit,
		Submit:   DefaultSubmitGasLimit,
	}
}

var _ module.OracleContractClient = (*Client)(nil)

// Client is the FlightSuretyApp contract client of the oracle fleet. It signs every
// transaction locally with the key of the oracle account it is sent from.
type Client struct {
	log      zerolog.Logger
	backend  Backend
	abi      abi.ABI
	contract *bind.BoundContract
	address  common.Address
	chainID  *big.Int
	keys     *Keyring
	gas      GasLimits

	// one lock per account, so the nonce of a transaction is taken only after
	// the previous transaction of the same account reached the node
	locksMu sync.Mutex
	locks   map[common.Address]*sync.Mutex
}

// NewClient binds the app contract at the given address.
func NewClient(
	log zerolog.Logger,
	backend Backend,
	address common.Address,
	chainID *big.Int,
	keys *Keyring,
	gas GasLimits,
) (*Client, error) {
	parsed, err := abi.JSON(strings.NewReader(FlightSuretyAppABI))
	if err != nil {
		return nil, fmt.Errorf("could not parse contract abi: %w", err)
	}

	return &Client{
		log:      log.With().Str("module", "flight_surety_client").Str("contract", address.Hex()).Logger(),
		backend:  backend,
		abi:      parsed,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		address:  address,
		chainID:  chainID,
		keys:     keys,
		gas:      gas,
		locks:    make(map[common.Address]*sync.Mutex),
	}, nil
}

// Dial connects to the ledger node and binds the app contract. Subscriptions need a
// streaming transport, so http endpoints are dialed over websocket instead.
func Dial(
	ctx context.Context,
	log zerolog.Logger,
	url string,
	address common.Address,
	keys *Keyring,
	gas GasLimits,
) (*Client, *ethclient.Client, error) {
	endpoint := WebsocketURL(url)
	ethClient, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("could not dial ledger node at %s: %w", endpoint, err)
	}

	chainID, err := ethClient.ChainID(ctx)
	if err != nil {
		ethClient.Close()
		return nil, nil, fmt.Errorf("could not get chain id: %w", err)
	}

	client, err := NewClient(log, ethClient, address, chainID, keys, gas)
	if err != nil {
		ethClient.Close()
		return nil, nil, err
	}
	return client, ethClient, nil
}

// WebsocketURL rewrites an http(s) endpoint to the matching ws(s) endpoint. Other
// schemes are returned as they are.
func WebsocketURL(url string) string {
	if strings.HasPrefix(url, "http") {
		return "ws" + strings.TrimPrefix(url, "http")
	}
	return url
}

// RegistrationFee reads the registration fee the contract charges.
func (c *Client) RegistrationFee(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, methodRegistrationFee)
	if err != nil {
		return nil, fmt.Errorf("could not read registration fee: %w", err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected number of return values: %d", len(out))
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// RegisterOracle sends the registration transaction and waits until it is mined.
func (c *Client) RegisterOracle(ctx context.Context, account common.Address, fee *big.Int) error {
	tx, err := c.transact(ctx, account, fee, c.gas.Register, methodRegisterOracle)
	if err != nil {
		return err
	}

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return fmt.Errorf("could not wait for registration transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("registration transaction %s reverted", tx.Hash().Hex())
	}

	c.log.Debug().
		Str("account", account.Hex()).
		Str("tx_hash", tx.Hash().Hex()).
		Uint64("block_number", receipt.BlockNumber.Uint64()).
		Msg("registration transaction mined")
	return nil
}

// GetMyIndexes calls the index query with the given account as sender.
func (c *Client) GetMyIndexes(ctx context.Context, account common.Address) (oracle.Indexes, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx, From: account}, &out, methodGetMyIndexes)
	if err != nil {
		return oracle.Indexes{}, fmt.Errorf("could not get indexes of %s: %w", account.Hex(), err)
	}
	if len(out) != 1 {
		return oracle.Indexes{}, fmt.Errorf("unexpected number of return values: %d", len(out))
	}
	indexes := *abi.ConvertType(out[0], new([oracle.IndexCount]uint8)).(*[oracle.IndexCount]uint8)
	return oracle.Indexes(indexes), nil
}

// SubmitOracleResponse sends the response transaction. It does not wait for the
// transaction to be mined.
func (c *Client) SubmitOracleResponse(ctx context.Context, response *oracle.StatusResponse) error {
	tx, err := c.transact(ctx, response.Oracle, nil, c.gas.Submit, methodSubmitOracleResponse,
		response.Index,
		response.Airline,
		response.Flight,
		response.Timestamp,
		uint8(response.StatusCode),
	)
	if err != nil {
		return err
	}

	c.log.Debug().
		Str("oracle", response.Oracle.Hex()).
		Str("tx_hash", tx.Hash().Hex()).
		Msg("response transaction sent")
	return nil
}

func (c *Client) transact(
	ctx context.Context,
	account common.Address,
	value *big.Int,
	gasLimit uint64,
	method string,
	params ...interface{},
) (*types.Transaction, error) {
	key, ok := c.keys.Key(account)
	if !ok {
		return nil, fmt.Errorf("no signing key for account %s", account.Hex())
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("could not create transactor: %w", err)
	}
	opts.Context = ctx
	opts.Value = value
	opts.GasLimit = gasLimit

	lock := c.accountLock(account)
	lock.Lock()
	defer lock.Unlock()

	tx, err := c.contract.Transact(opts, method, params...)
	if err != nil {
		return nil, fmt.Errorf("could not send %s transaction from %s: %w", method, account.Hex(), err)
	}
	return tx, nil
}

func (c *Client) accountLock(account common.Address) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()

	lock, ok := c.locks[account]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[account] = lock
	}
	return lock
}

// WatchOracleRequests forwards every request event to sink until the subscription is
// unsubscribed or fails.
func (c *Client) WatchOracleRequests(ctx context.Context, start *uint64, sink chan<- *oracle.StatusRequest) (event.Subscription, error) {
	return watch(ctx, c, EventOracleRequest, start, sink, func(log types.Log) (*oracle.StatusRequest, error) {
		return parseOracleRequest(c.contract, log)
	})
}

// WatchOracleReports forwards every report event to sink until the subscription is
// unsubscribed or fails.
func (c *Client) WatchOracleReports(ctx context.Context, start *uint64, sink chan<- *oracle.Report) (event.Subscription, error) {
	return watch(ctx, c, EventOracleReport, start, sink, func(log types.Log) (*oracle.Report, error) {
		return parseOracleReport(c.contract, log)
	})
}

// watch subscribes to the logs of the given event and decodes them into sink. Logs
// removed by a reorg and logs which cannot be decoded are skipped.
//
// With a start block, the logs emitted since then are fetched once and delivered before
// the live ones. The live subscription is opened first, so a log emitted in between may
// be delivered twice but is never missed.
func watch[T any](
	ctx context.Context,
	c *Client,
	name string,
	start *uint64,
	sink chan<- T,
	parse func(types.Log) (T, error),
) (event.Subscription, error) {
	logs, sub, err := c.contract.WatchLogs(&bind.WatchOpts{Context: ctx}, name)
	if err != nil {
		return nil, fmt.Errorf("could not subscribe to %s events: %w", name, err)
	}

	var backlog []types.Log
	if start != nil {
		backlog, err = c.backend.FilterLogs(ctx, ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(*start),
			Addresses: []common.Address{c.address},
			Topics:    [][]common.Hash{{c.abi.Events[name].ID}},
		})
		if err != nil {
			sub.Unsubscribe()
			return nil, fmt.Errorf("could not fetch %s events since block %d: %w", name, *start, err)
		}
	}

	log := c.log.With().Str("event", name).Logger()

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()

		// forward returns true if the subscription ended while delivering
		forward := func(raw types.Log) (bool, error) {
			lg := log.With().
				Uint64("block_number", raw.BlockNumber).
				Str("tx_hash", raw.TxHash.Hex()).
				Logger()
			if raw.Removed {
				lg.Debug().Msg("skipping removed log")
				return false, nil
			}
			decoded, err := parse(raw)
			if err != nil {
				lg.Warn().Err(err).Msg("skipping malformed log")
				return false, nil
			}

			select {
			case sink <- decoded:
				return false, nil
			case err := <-sub.Err():
				return true, err
			case <-quit:
				return true, nil
			}
		}

		if len(backlog) > 0 {
			log.Info().Uint64("start", *start).Int("logs", len(backlog)).Msg("replaying logs since last delivered block")
		}
		for _, raw := range backlog {
			if done, err := forward(raw); done {
				return err
			}
		}

		for {
			select {
			case raw := <-logs:
				if done, err := forward(raw); done {
					return err
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}
