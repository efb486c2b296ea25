// Package marketplace contains RPC wrappers for the LazyTask Marketplace
// contract.
package marketplace

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Job statuses as stored by the contract.
const (
	StatusPosted int64 = iota
	StatusAccepted
	StatusCompleted
	StatusDisputed
	StatusRejected
)

// Job is the Go-side mirror of the contract's Job structure.
type Job struct {
	ID       *big.Int
	Customer util.Uint160
	Worker   util.Uint160
	Bounty   *big.Int
	Bond     *big.Int
	JobType  string
	Evidence string
	Status   *big.Int
	PostedAt *big.Int
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

// GetJob invokes `getJob` method of the contract.
func (c *ContractReader) GetJob(jobID *big.Int) (*Job, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "getJob", jobID))
	if err != nil {
		return nil, err
	}
	return itemToJob(item)
}

// GetActiveJobTypes invokes `getActiveJobTypes` method of the contract.
func (c *ContractReader) GetActiveJobTypes() ([]string, error) {
	items, err := unwrap.Array(c.invoker.Call(c.hash, "getActiveJobTypes"))
	if err != nil {
		return nil, err
	}

	types := make([]string, 0, len(items))
	for i := range items {
		b, err := items[i].TryBytes()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("item %d: not a UTF-8 string", i)
		}
		types = append(types, string(b))
	}

	return types, nil
}

// NextJobID invokes `nextJobID` method of the contract.
func (c *ContractReader) NextJobID() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "nextJobID"))
}

// Treasury invokes `treasury` method of the contract.
func (c *ContractReader) Treasury() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "treasury"))
}

// PlatformFee invokes `platformFee` method of the contract.
func (c *ContractReader) PlatformFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "platformFee"))
}

// IsOracle invokes `isOracle` method of the contract.
func (c *ContractReader) IsOracle(addr util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isOracle", addr))
}

// IsArbitrator invokes `isArbitrator` method of the contract.
func (c *ContractReader) IsArbitrator(addr util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isArbitrator", addr))
}

// Version invokes `version` method of the contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// PostJob creates and sends a transaction invoking `postJob` method of the
// contract.
func (c *Contract) PostJob(customer util.Uint160, jobType string, bond *big.Int, bounty *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "postJob", customer, jobType, bond, bounty)
}

// AcceptJob creates and sends a transaction invoking `acceptJob` method of
// the contract.
func (c *Contract) AcceptJob(worker util.Uint160, jobID *big.Int, bondPayment *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "acceptJob", worker, jobID, bondPayment)
}

// SubmitEvidence creates and sends a transaction invoking `submitEvidence`
// method of the contract.
func (c *Contract) SubmitEvidence(worker util.Uint160, jobID *big.Int, evidence string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "submitEvidence", worker, jobID, evidence)
}

// CompleteJob creates and sends a transaction invoking `completeJob` method
// of the contract.
func (c *Contract) CompleteJob(caller util.Uint160, jobID *big.Int, rating *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "completeJob", caller, jobID, rating)
}

// DisputeJob creates and sends a transaction invoking `disputeJob` method of
// the contract.
func (c *Contract) DisputeJob(worker util.Uint160, jobID *big.Int, evidence string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "disputeJob", worker, jobID, evidence)
}

// ResolveDispute creates and sends a transaction invoking `resolveDispute`
// method of the contract.
func (c *Contract) ResolveDispute(arbitrator util.Uint160, jobID *big.Int, workerWins bool, rating *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "resolveDispute", arbitrator, jobID, workerWins, rating)
}

// SlashBond creates and sends a transaction invoking `slashBond` method of
// the contract.
func (c *Contract) SlashBond(jobID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "slashBond", jobID)
}

// SetTreasury creates and sends a transaction invoking `setTreasury` method
// of the contract.
func (c *Contract) SetTreasury(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setTreasury", addr)
}

// SetPlatformFee creates and sends a transaction invoking `setPlatformFee`
// method of the contract.
func (c *Contract) SetPlatformFee(bps *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setPlatformFee", bps)
}

// AddOracle creates and sends a transaction invoking `addOracle` method of
// the contract.
func (c *Contract) AddOracle(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addOracle", addr)
}

// RemoveOracle creates and sends a transaction invoking `removeOracle`
// method of the contract.
func (c *Contract) RemoveOracle(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeOracle", addr)
}

// AddArbitrator creates and sends a transaction invoking `addArbitrator`
// method of the contract.
func (c *Contract) AddArbitrator(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addArbitrator", addr)
}

// RemoveArbitrator creates and sends a transaction invoking
// `removeArbitrator` method of the contract.
func (c *Contract) RemoveArbitrator(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeArbitrator", addr)
}

func itemToJob(item stackitem.Item) (*Job, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, fmt.Errorf("not an array")
	}
	if len(arr) != 9 {
		return nil, fmt.Errorf("wrong number of fields: %d", len(arr))
	}

	var (
		j   Job
		err error
	)

	j.ID, err = arr[0].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field ID: %w", err)
	}

	j.Customer, err = itemToUint160(arr[1])
	if err != nil {
		return nil, fmt.Errorf("field Customer: %w", err)
	}

	// Worker is unset until the job is accepted.
	if _, isNull := arr[2].(stackitem.Null); !isNull {
		b, err := arr[2].TryBytes()
		if err != nil {
			return nil, fmt.Errorf("field Worker: %w", err)
		}
		if len(b) > 0 {
			j.Worker, err = util.Uint160DecodeBytesBE(b)
			if err != nil {
				return nil, fmt.Errorf("field Worker: %w", err)
			}
		}
	}

	j.Bounty, err = arr[3].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field Bounty: %w", err)
	}

	j.Bond, err = arr[4].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field Bond: %w", err)
	}

	j.JobType, err = itemToString(arr[5])
	if err != nil {
		return nil, fmt.Errorf("field JobType: %w", err)
	}

	j.Evidence, err = itemToString(arr[6])
	if err != nil {
		return nil, fmt.Errorf("field Evidence: %w", err)
	}

	j.Status, err = arr[7].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field Status: %w", err)
	}

	j.PostedAt, err = arr[8].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field PostedAt: %w", err)
	}

	return &j, nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}

	return util.Uint160DecodeBytesBE(b)
}

func itemToString(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("not a UTF-8 string")
	}

	return string(b), nil
}
