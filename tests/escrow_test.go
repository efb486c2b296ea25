package tests

import (
	"testing"

	"github.com/lazytask/lazytask-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestEscrowSetMarketplace(t *testing.T) {
	c := newEscrowInvoker(t)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrWitnessFailed, "setMarketplace", acc.ScriptHash())

	c.InvokeFail(t, "invalid marketplace address", "setMarketplace", []byte{1, 2, 3})

	c.Invoke(t, stackitem.Null{}, "setMarketplace", acc.ScriptHash())
	c.InvokeFail(t, "marketplace already set", "setMarketplace", acc.ScriptHash())
}

func TestEscrowMarketplaceGating(t *testing.T) {
	c := newEscrowInvoker(t)

	acc := c.NewAccount(t)
	methods := [][]any{
		{"depositBounty", int64(1), acc.ScriptHash(), int64(bountyAmount)},
		{"depositBond", int64(1), acc.ScriptHash(), int64(bondAmount)},
		{"payout", int64(1), acc.ScriptHash(), int64(bountyAmount), acc.ScriptHash(), int64(0)},
		{"refund", int64(1)},
	}
	for _, m := range methods {
		c.InvokeFail(t, "only marketplace", m[0].(string), m[1:]...)
	}
}

func TestEscrowHeldFunds(t *testing.T) {
	s := newMarketSuite(t)

	customer := s.e.NewAccount(t)
	worker := s.e.NewAccount(t)

	require.EqualValues(t, 0, s.totalHeld(t))

	id := s.postJob(t, customer, "Cleaning")
	require.EqualValues(t, bountyAmount, s.totalHeld(t))
	require.EqualValues(t, bountyAmount, s.gasBalance(t, s.escrowHash))

	s.acceptJob(t, worker, id)
	require.EqualValues(t, bountyAmount+bondAmount, s.totalHeld(t))
	require.EqualValues(t, bountyAmount+bondAmount, s.gasBalance(t, s.escrowHash))

	s.completeJob(t, customer, id, 5)
	require.EqualValues(t, 0, s.totalHeld(t))
	require.EqualValues(t, 0, s.gasBalance(t, s.escrowHash))
}

func TestEscrowAcceptsGASOnly(t *testing.T) {
	s := newMarketSuite(t)

	acc := s.e.NewAccount(t)
	s.gas.WithSigners(acc).Invoke(t, true, "transfer",
		acc.ScriptHash(), s.escrowHash, int64(1_0000_0000), nil)
	require.EqualValues(t, 1_0000_0000, s.gasBalance(t, s.escrowHash))
}

func TestEscrowVersion(t *testing.T) {
	c := newEscrowInvoker(t)
	c.Invoke(t, stackitem.Make(common.Version), "version")
}
