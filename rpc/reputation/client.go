// Package reputation contains RPC wrappers for the LazyTask Reputation
// contract.
package reputation

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Entry is the Go-side mirror of the contract's history Entry structure.
type Entry struct {
	JobID     *big.Int
	Rating    *big.Int
	Bounty    *big.Int
	Timestamp *big.Int
}

// Invoker is used by ContractReader to call safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to create and send transactions.
type Actor interface {
	Invoker

	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader provides safe (read-only) methods of the contract.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract provides all contract methods.
type Contract struct {
	ContractReader

	actor Actor
}

// NewReader creates an instance of ContractReader using the given contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker: invoker, hash: hash}
}

// New creates an instance of Contract using the given contract hash and the
// given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{invoker: actor, hash: hash}, actor}
}

// ScoreOf invokes `scoreOf` method of the contract.
func (c *ContractReader) ScoreOf(worker util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "scoreOf", worker))
}

// JobCountOf invokes `jobCountOf` method of the contract.
func (c *ContractReader) JobCountOf(worker util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "jobCountOf", worker))
}

// CheckEligibility invokes `checkEligibility` method of the contract.
func (c *ContractReader) CheckEligibility(worker util.Uint160, jobType string) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "checkEligibility", worker, jobType))
}

// MinScoreOf invokes `minScoreOf` method of the contract.
func (c *ContractReader) MinScoreOf(jobType string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "minScoreOf", jobType))
}

// HistoryOf invokes `historyOf` method of the contract.
func (c *ContractReader) HistoryOf(worker util.Uint160) ([]Entry, error) {
	items, err := unwrap.Array(c.invoker.Call(c.hash, "historyOf", worker))
	if err != nil {
		return nil, err
	}

	history := make([]Entry, 0, len(items))
	for i := range items {
		e, err := itemToEntry(items[i])
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		history = append(history, e)
	}

	return history, nil
}

// Version invokes `version` method of the contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// SetMinReputationScore creates and sends a transaction invoking
// `setMinReputationScore` method of the contract.
func (c *Contract) SetMinReputationScore(jobType string, score *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setMinReputationScore", jobType, score)
}

// SetMarketplace creates and sends a transaction invoking `setMarketplace`
// method of the contract.
func (c *Contract) SetMarketplace(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setMarketplace", addr)
}

// SetBadge creates and sends a transaction invoking `setBadge` method of the
// contract.
func (c *Contract) SetBadge(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setBadge", addr)
}

func itemToEntry(item stackitem.Item) (Entry, error) {
	var e Entry

	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return e, fmt.Errorf("not an array")
	}
	if len(arr) != 4 {
		return e, fmt.Errorf("wrong number of fields: %d", len(arr))
	}

	var err error

	e.JobID, err = arr[0].TryInteger()
	if err != nil {
		return e, fmt.Errorf("field JobID: %w", err)
	}

	e.Rating, err = arr[1].TryInteger()
	if err != nil {
		return e, fmt.Errorf("field Rating: %w", err)
	}

	e.Bounty, err = arr[2].TryInteger()
	if err != nil {
		return e, fmt.Errorf("field Bounty: %w", err)
	}

	e.Timestamp, err = arr[3].TryInteger()
	if err != nil {
		return e, fmt.Errorf("field Timestamp: %w", err)
	}

	return e, nil
}
