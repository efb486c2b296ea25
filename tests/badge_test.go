package tests

import (
	"testing"

	"github.com/lazytask/lazytask-contract/common"
	"github.com/lazytask/lazytask-contract/contracts/badge"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestBadgeSetIssuer(t *testing.T) {
	c := newBadgeInvoker(t)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrWitnessFailed, "setIssuer", acc.ScriptHash())
	c.InvokeFail(t, "invalid issuer address", "setIssuer", []byte{1, 2, 3})

	c.Invoke(t, stackitem.Null{}, "setIssuer", acc.ScriptHash())
	c.InvokeFail(t, "issuer already set", "setIssuer", acc.ScriptHash())
}

func TestBadgeMintRestricted(t *testing.T) {
	s := newMarketSuite(t)

	// Only the reputation contract may mint, and a rejected mint reports
	// failure instead of aborting the carrier transaction.
	acc := s.e.NewAccount(t)
	s.badge.Invoke(t, false, "mint", acc.ScriptHash(), int64(badge.FirstStep))
}

func TestBadgeMilestones(t *testing.T) {
	s := newMarketSuite(t)

	customer := s.e.NewAccount(t)
	worker := s.e.NewAccount(t)

	s.badge.Invoke(t, stackitem.Make(0), "totalSupply")
	s.badge.Invoke(t, stackitem.Make(0), "balanceOf", worker.ScriptHash())

	// The first settled job mints the First Step badge.
	id := s.postJob(t, customer, "Cleaning")
	s.acceptJob(t, worker, id)

	cInv := s.marketplace.WithSigners(customer)
	h := cInv.Invoke(t, stackitem.Null{}, "completeJob", customer.ScriptHash(), id, int64(5))
	aer := cInv.CheckHalt(t, h)

	ev := findEvent(t, aer, "BadgeMinted")
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(worker.ScriptHash()),
		stackitem.Make(0),
		stackitem.Make(badge.FirstStep),
	}), ev.Item)

	s.badge.Invoke(t, stackitem.Make(1), "totalSupply")
	s.badge.Invoke(t, stackitem.Make(1), "balanceOf", worker.ScriptHash())
	require.Equal(t, worker.ScriptHash(), s.badgeOwnerOf(t, 0))
	s.badge.Invoke(t, stackitem.Make(badge.FirstStep), "badgeTypeOf", int64(0))

	// Jobs two through four cross no milestone.
	for i := 0; i < 3; i++ {
		id := s.postJob(t, customer, "Cleaning")
		s.acceptJob(t, worker, id)

		h := cInv.Invoke(t, stackitem.Null{}, "completeJob", customer.ScriptHash(), id, int64(5))
		requireNoEvent(t, cInv.CheckHalt(t, h), "BadgeMinted")
	}

	// The fifth mints Reliable Worker.
	id = s.postJob(t, customer, "Cleaning")
	s.acceptJob(t, worker, id)

	h = cInv.Invoke(t, stackitem.Null{}, "completeJob", customer.ScriptHash(), id, int64(5))
	ev = findEvent(t, cInv.CheckHalt(t, h), "BadgeMinted")
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(worker.ScriptHash()),
		stackitem.Make(1),
		stackitem.Make(badge.ReliableWorker),
	}), ev.Item)

	s.badge.Invoke(t, stackitem.Make(2), "totalSupply")
	s.badge.Invoke(t, stackitem.Make(2), "balanceOf", worker.ScriptHash())
	s.badge.Invoke(t, stackitem.Make(badge.ReliableWorker), "badgeTypeOf", int64(1))

	s.badge.Invoke(t, stackitem.NewMapWithValue([]stackitem.MapElement{
		{Key: stackitem.Make("name"), Value: stackitem.Make("First Step")},
	}), "properties", int64(0))
	s.badge.Invoke(t, stackitem.NewMapWithValue([]stackitem.MapElement{
		{Key: stackitem.Make("name"), Value: stackitem.Make("Reliable Worker")},
	}), "properties", int64(1))
}

func TestBadgeSoulbound(t *testing.T) {
	s := newMarketSuite(t)

	customer := s.e.NewAccount(t)
	worker := s.e.NewAccount(t)
	s.runJob(t, customer, worker, "Cleaning", 5)

	s.badge.WithSigners(worker).InvokeFail(t, "badge is soulbound", "transfer",
		customer.ScriptHash(), []byte{0}, nil)
}

func TestBadgeSymbol(t *testing.T) {
	c := newBadgeInvoker(t)

	c.Invoke(t, stackitem.Make("BADGE"), "symbol")
	c.Invoke(t, stackitem.Make(0), "decimals")
	c.InvokeFail(t, "token not found", "ownerOf", int64(0))
	c.InvokeFail(t, "token not found", "badgeTypeOf", int64(0))
}

func TestBadgeVersion(t *testing.T) {
	c := newBadgeInvoker(t)
	c.Invoke(t, stackitem.Make(common.Version), "version")
}
