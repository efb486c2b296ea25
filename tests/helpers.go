package tests

import (
	"math/rand"
	"path"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	escrowPath      = "../contracts/escrow"
	reputationPath  = "../contracts/reputation"
	marketplacePath = "../contracts/marketplace"
	badgePath       = "../contracts/badge"
)

const (
	bountyAmount = 1_0000_0000
	bondAmount   = 1000_0000
)

// marketSuite is a fully wired deployment of the four LazyTask contracts.
// All contract invokers sign with the committee account by default, which is
// also the marketplace owner.
type marketSuite struct {
	e *neotest.Executor

	marketplace *neotest.ContractInvoker
	escrow      *neotest.ContractInvoker
	reputation  *neotest.ContractInvoker
	badge       *neotest.ContractInvoker
	gas         *neotest.ContractInvoker

	marketplaceHash util.Uint160
	escrowHash      util.Uint160
	reputationHash  util.Uint160
	badgeHash       util.Uint160

	treasury neotest.Signer
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func deployContract(t *testing.T, e *neotest.Executor, ctrPath string, args []any) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func newEscrowInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	h := deployContract(t, e, escrowPath, nil)
	return e.CommitteeInvoker(h)
}

func newReputationInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	h := deployContract(t, e, reputationPath, nil)
	return e.CommitteeInvoker(h)
}

func newBadgeInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	h := deployContract(t, e, badgePath, nil)
	return e.CommitteeInvoker(h)
}

func newMarketSuite(t *testing.T) *marketSuite {
	e := newExecutor(t)

	s := &marketSuite{
		e:        e,
		treasury: e.NewAccount(t),
	}

	s.escrowHash = deployContract(t, e, escrowPath, nil)
	s.reputationHash = deployContract(t, e, reputationPath, nil)
	s.badgeHash = deployContract(t, e, badgePath, nil)

	args := make([]any, 4)
	args[0] = e.CommitteeHash
	args[1] = s.escrowHash
	args[2] = s.reputationHash
	args[3] = s.treasury.ScriptHash()
	s.marketplaceHash = deployContract(t, e, marketplacePath, args)

	s.escrow = e.CommitteeInvoker(s.escrowHash)
	s.reputation = e.CommitteeInvoker(s.reputationHash)
	s.badge = e.CommitteeInvoker(s.badgeHash)
	s.marketplace = e.CommitteeInvoker(s.marketplaceHash)
	s.gas = e.CommitteeInvoker(e.NativeHash(t, nativenames.Gas))

	s.escrow.Invoke(t, stackitem.Null{}, "setMarketplace", s.marketplaceHash)
	s.reputation.Invoke(t, stackitem.Null{}, "setMarketplace", s.marketplaceHash)
	s.reputation.Invoke(t, stackitem.Null{}, "setBadge", s.badgeHash)
	s.badge.Invoke(t, stackitem.Null{}, "setIssuer", s.reputationHash)

	return s
}

func (s *marketSuite) nextJobID(t *testing.T) int64 {
	res, err := s.marketplace.TestInvoke(t, "nextJobID")
	require.NoError(t, err)
	return res.Top().BigInt().Int64()
}

// postJob posts a job with the default bounty and bond and returns its
// identifier.
func (s *marketSuite) postJob(t *testing.T, customer neotest.Signer, jobType string) int64 {
	id := s.nextJobID(t)
	s.marketplace.WithSigners(customer).Invoke(t, stackitem.Make(id), "postJob",
		customer.ScriptHash(), jobType, int64(bondAmount), int64(bountyAmount))
	return id
}

func (s *marketSuite) acceptJob(t *testing.T, worker neotest.Signer, jobID int64) {
	s.marketplace.WithSigners(worker).Invoke(t, stackitem.Null{}, "acceptJob",
		worker.ScriptHash(), jobID, int64(bondAmount))
}

func (s *marketSuite) completeJob(t *testing.T, customer neotest.Signer, jobID, rating int64) {
	s.marketplace.WithSigners(customer).Invoke(t, stackitem.Null{}, "completeJob",
		customer.ScriptHash(), jobID, rating)
}

// runJob drives a single job through post, accept and completion with the
// given rating.
func (s *marketSuite) runJob(t *testing.T, customer, worker neotest.Signer, jobType string, rating int64) int64 {
	id := s.postJob(t, customer, jobType)
	s.acceptJob(t, worker, id)
	s.completeJob(t, customer, id, rating)
	return id
}

func (s *marketSuite) gasBalance(t *testing.T, h util.Uint160) int64 {
	res, err := s.gas.TestInvoke(t, "balanceOf", h)
	require.NoError(t, err)
	return res.Top().BigInt().Int64()
}

func (s *marketSuite) totalHeld(t *testing.T) int64 {
	res, err := s.escrow.TestInvoke(t, "totalHeld")
	require.NoError(t, err)
	return res.Top().BigInt().Int64()
}

// treasuryAddress reads the current fee destination. The contract hands the
// stored address back as a Buffer, so it is decoded instead of compared as a
// stack item.
func (s *marketSuite) treasuryAddress(t *testing.T) util.Uint160 {
	res, err := s.marketplace.TestInvoke(t, "treasury")
	require.NoError(t, err)
	return toUint160(t, res.Top().Item())
}

func (s *marketSuite) badgeOwnerOf(t *testing.T, tokenID int64) util.Uint160 {
	res, err := s.badge.TestInvoke(t, "ownerOf", tokenID)
	require.NoError(t, err)
	return toUint160(t, res.Top().Item())
}

func (s *marketSuite) scoreOf(t *testing.T, worker util.Uint160) int64 {
	res, err := s.reputation.TestInvoke(t, "scoreOf", worker)
	require.NoError(t, err)
	return res.Top().BigInt().Int64()
}

func (s *marketSuite) jobCountOf(t *testing.T, worker util.Uint160) int64 {
	res, err := s.reputation.TestInvoke(t, "jobCountOf", worker)
	require.NoError(t, err)
	return res.Top().BigInt().Int64()
}

// jobState is a test-side view of the marketplace Job structure.
type jobState struct {
	id       int64
	customer util.Uint160
	worker   util.Uint160
	bounty   int64
	bond     int64
	jobType  string
	evidence string
	status   int64
}

func (s *marketSuite) getJob(t *testing.T, jobID int64) jobState {
	res, err := s.marketplace.TestInvoke(t, "getJob", jobID)
	require.NoError(t, err)

	fields, ok := res.Top().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, fields, 9)

	var job jobState
	job.id = toInt64(t, fields[0])
	job.customer = toUint160(t, fields[1])
	job.worker = toUint160(t, fields[2])
	job.bounty = toInt64(t, fields[3])
	job.bond = toInt64(t, fields[4])
	job.jobType = toString(t, fields[5])
	job.evidence = toString(t, fields[6])
	job.status = toInt64(t, fields[7])
	return job
}

func toInt64(t *testing.T, item stackitem.Item) int64 {
	v, err := item.TryInteger()
	require.NoError(t, err)
	return v.Int64()
}

func toUint160(t *testing.T, item stackitem.Item) util.Uint160 {
	// An unset Hash160 struct field comes back as Null.
	if _, isNull := item.(stackitem.Null); isNull {
		return util.Uint160{}
	}

	b, err := item.TryBytes()
	require.NoError(t, err)
	if len(b) == 0 {
		return util.Uint160{}
	}

	h, err := util.Uint160DecodeBytesBE(b)
	require.NoError(t, err)
	return h
}

func toString(t *testing.T, item stackitem.Item) string {
	b, err := item.TryBytes()
	require.NoError(t, err)
	return string(b)
}

// findEvent returns the first notification with the given name out of the
// application execution result, failing the test when there is none.
func findEvent(t *testing.T, aer *state.AppExecResult, name string) state.NotificationEvent {
	for i := range aer.Events {
		if aer.Events[i].Name == name {
			return aer.Events[i]
		}
	}

	t.Fatalf("notification %s not found", name)
	return state.NotificationEvent{}
}

func requireNoEvent(t *testing.T, aer *state.AppExecResult, name string) {
	for i := range aer.Events {
		require.NotEqual(t, name, aer.Events[i].Name)
	}
}

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

// evidenceCID returns a random base58 string shaped like a content address.
func evidenceCID() string {
	return base58.Encode(randomBytes(32))
}
