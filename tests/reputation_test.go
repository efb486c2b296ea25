package tests

import (
	"testing"

	"github.com/lazytask/lazytask-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestReputationWiring(t *testing.T) {
	c := newReputationInvoker(t)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrWitnessFailed, "setMarketplace", acc.ScriptHash())
	c.WithSigners(acc).InvokeFail(t, common.ErrWitnessFailed, "setBadge", acc.ScriptHash())

	c.Invoke(t, stackitem.Null{}, "setMarketplace", acc.ScriptHash())
	c.InvokeFail(t, "marketplace already set", "setMarketplace", acc.ScriptHash())

	c.Invoke(t, stackitem.Null{}, "setBadge", acc.ScriptHash())
	c.InvokeFail(t, "badge already set", "setBadge", acc.ScriptHash())
}

func TestReputationRecordJobRestricted(t *testing.T) {
	c := newReputationInvoker(t)

	acc := c.NewAccount(t)
	c.InvokeFail(t, "only marketplace", "recordJob", acc.ScriptHash(), int64(0), int64(5), int64(bountyAmount))
}

func TestReputationMinScore(t *testing.T) {
	c := newReputationInvoker(t)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrWitnessFailed, "setMinReputationScore", "Plumbing", int64(300))
	c.InvokeFail(t, "invalid score", "setMinReputationScore", "Plumbing", int64(-1))

	c.Invoke(t, stackitem.Make(0), "minScoreOf", "Plumbing")
	c.Invoke(t, stackitem.Null{}, "setMinReputationScore", "Plumbing", int64(300))
	c.Invoke(t, stackitem.Make(300), "minScoreOf", "Plumbing")

	c.Invoke(t, stackitem.Null{}, "setMinReputationScore", "Plumbing", int64(450))
	c.Invoke(t, stackitem.Make(450), "minScoreOf", "Plumbing")

	t.Run("unknown worker", func(t *testing.T) {
		// No configured minimum, open to everyone.
		c.Invoke(t, true, "checkEligibility", acc.ScriptHash(), "Gardening")
		// Explicit zero keeps the type open.
		c.Invoke(t, stackitem.Null{}, "setMinReputationScore", "Gardening", int64(0))
		c.Invoke(t, true, "checkEligibility", acc.ScriptHash(), "Gardening")
		// A positive minimum closes it for workers with no history.
		c.Invoke(t, false, "checkEligibility", acc.ScriptHash(), "Plumbing")
	})
}

func TestReputationEligibilityGate(t *testing.T) {
	s := newMarketSuite(t)

	customer := s.e.NewAccount(t)
	worker := s.e.NewAccount(t)

	s.reputation.Invoke(t, stackitem.Null{}, "setMinReputationScore", "Plumbing", int64(400))

	id := s.postJob(t, customer, "Plumbing")
	s.marketplace.WithSigners(worker).InvokeFail(t, "worker not eligible", "acceptJob",
		worker.ScriptHash(), id, int64(bondAmount))

	// Make a name on an ungated job type first.
	s.runJob(t, customer, worker, "Cleaning", 4)
	require.EqualValues(t, 400, s.scoreOf(t, worker.ScriptHash()))

	s.acceptJob(t, worker, id)
}

func TestReputationScoreAndHistory(t *testing.T) {
	s := newMarketSuite(t)

	customer := s.e.NewAccount(t)
	worker := s.e.NewAccount(t)

	require.EqualValues(t, 0, s.scoreOf(t, worker.ScriptHash()))
	require.EqualValues(t, 0, s.jobCountOf(t, worker.ScriptHash()))

	id1 := s.runJob(t, customer, worker, "Cleaning", 5)
	require.EqualValues(t, 500, s.scoreOf(t, worker.ScriptHash()))
	require.EqualValues(t, 1, s.jobCountOf(t, worker.ScriptHash()))

	id2 := s.runJob(t, customer, worker, "Programming", 4)
	require.EqualValues(t, 450, s.scoreOf(t, worker.ScriptHash()))
	require.EqualValues(t, 2, s.jobCountOf(t, worker.ScriptHash()))

	res, err := s.reputation.TestInvoke(t, "historyOf", worker.ScriptHash())
	require.NoError(t, err)

	entries, ok := res.Top().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, entries, 2)

	first, ok := entries[0].Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, first, 4)
	require.EqualValues(t, id1, toInt64(t, first[0]))
	require.EqualValues(t, 5, toInt64(t, first[1]))
	require.EqualValues(t, bountyAmount, toInt64(t, first[2]))

	second, ok := entries[1].Value().([]stackitem.Item)
	require.True(t, ok)
	require.EqualValues(t, id2, toInt64(t, second[0]))
	require.EqualValues(t, 4, toInt64(t, second[1]))
}

func TestReputationVersion(t *testing.T) {
	c := newReputationInvoker(t)
	c.Invoke(t, stackitem.Make(common.Version), "version")
}
