package escrow

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/lazytask/lazytask-contract/common"
)

type (
	// Account holds funds escrowed for a single job. Bond is zero until a
	// worker has been bonded to the job.
	Account struct {
		// Customer that funded the bounty, refund destination.
		Customer interop.Hash160
		// Worker bonded to the job, empty before acceptance.
		Worker interop.Hash160
		// Escrowed bounty amount.
		Bounty int
		// Escrowed worker bond amount.
		Bond int
	}
)

const (
	accountPrefix  = 'a'
	totalHeldKey   = 'h'
	marketplaceKey = 'm'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	runtime.Log("escrow contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("escrow contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Escrowed funds arrive through it when the contract pulls a bounty or bond.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("escrow contract accepts GAS only")
	}
}

// SetMarketplace stores the Marketplace contract address which becomes the
// only caller allowed to move escrowed funds. It can be invoked only by
// committee and only once.
func SetMarketplace(addr interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckWitness(interop.Hash160(common.CommitteeAddress()))

	if len(addr) != interop.Hash160Len {
		panic("invalid marketplace address")
	}
	if storage.Get(ctx, marketplaceKey) != nil {
		panic("marketplace already set")
	}

	storage.Put(ctx, marketplaceKey, addr)
	runtime.Log("marketplace address set")
}

// DepositBounty opens an escrow account for a new job and pulls the bounty
// from the customer. The customer witness must be present in the carrier
// transaction. It can be invoked only by the Marketplace contract.
func DepositBounty(jobID int, customer interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkMarketplace(ctx)

	if amount <= 0 {
		panic("bounty must be positive")
	}

	key := accountKey(jobID)
	if storage.Get(ctx, key) != nil {
		panic("job account exists")
	}

	acc := Account{
		Customer: customer,
		Bounty:   amount,
	}
	common.SetSerialized(ctx, key, acc)
	setTotalHeld(ctx, TotalHeld()+amount)

	self := runtime.GetExecutingScriptHash()
	if !gas.Transfer(customer, self, amount, nil) {
		panic("failed to escrow bounty")
	}
}

// DepositBond bonds a worker to an existing job account and pulls the bond
// from the worker. A zero bond is allowed and moves no funds. It can be
// invoked only by the Marketplace contract.
func DepositBond(jobID int, worker interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkMarketplace(ctx)

	if amount < 0 {
		panic("negative amount")
	}

	key := accountKey(jobID)
	acc := getAccount(ctx, jobID)
	if len(acc.Customer) != interop.Hash160Len {
		panic("job not found")
	}
	if len(acc.Worker) != 0 {
		panic("job already bonded")
	}

	acc.Worker = worker
	acc.Bond = amount
	common.SetSerialized(ctx, key, acc)

	if amount > 0 {
		setTotalHeld(ctx, TotalHeld()+amount)

		self := runtime.GetExecutingScriptHash()
		if !gas.Transfer(worker, self, amount, nil) {
			panic("failed to escrow bond")
		}
	}
}

// Payout settles a job once and forever: the escrow account is destroyed and
// its funds are split between the worker and the treasury. The split must
// conserve the escrowed total exactly. It can be invoked only by the
// Marketplace contract.
func Payout(jobID int, worker interop.Hash160, workerAmount int, treasury interop.Hash160, fee int) {
	ctx := storage.GetContext()
	checkMarketplace(ctx)

	acc := getAccount(ctx, jobID)
	if len(acc.Customer) != interop.Hash160Len {
		panic("job already settled")
	}
	if workerAmount < 0 || fee < 0 || workerAmount+fee != acc.Bounty+acc.Bond {
		panic("settlement amount mismatch")
	}

	storage.Delete(ctx, accountKey(jobID))
	setTotalHeld(ctx, TotalHeld()-acc.Bounty-acc.Bond)

	self := runtime.GetExecutingScriptHash()
	if workerAmount > 0 {
		if !gas.Transfer(self, worker, workerAmount, nil) {
			panic("failed to pay worker")
		}
	}
	if fee > 0 {
		if !gas.Transfer(self, treasury, fee, nil) {
			panic("failed to pay treasury")
		}
	}
}

// Refund settles a job in the customer's favor: the escrow account is
// destroyed and both bounty and bond return to the customer. It can be
// invoked only by the Marketplace contract.
func Refund(jobID int) {
	ctx := storage.GetContext()
	checkMarketplace(ctx)

	acc := getAccount(ctx, jobID)
	if len(acc.Customer) != interop.Hash160Len {
		panic("job already settled")
	}

	storage.Delete(ctx, accountKey(jobID))
	setTotalHeld(ctx, TotalHeld()-acc.Bounty-acc.Bond)

	self := runtime.GetExecutingScriptHash()
	if !gas.Transfer(self, acc.Customer, acc.Bounty+acc.Bond, nil) {
		panic("failed to refund customer")
	}
}

// TotalHeld returns the aggregate amount of GAS escrowed for all live jobs.
func TotalHeld() int {
	ctx := storage.GetReadOnlyContext()
	raw := storage.Get(ctx, totalHeldKey)
	if raw != nil {
		return raw.(int)
	}

	return 0
}

// AccountOf returns the escrow account of the given job. A settled or
// unknown job yields an empty account.
func AccountOf(jobID int) Account {
	ctx := storage.GetReadOnlyContext()
	return getAccount(ctx, jobID)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkMarketplace(ctx storage.Context) {
	mkt := storage.Get(ctx, marketplaceKey)
	if mkt == nil || !runtime.GetCallingScriptHash().Equals(mkt.(interop.Hash160)) {
		panic("only marketplace")
	}
}

func accountKey(jobID int) []byte {
	return append([]byte{accountPrefix}, convert.ToBytes(jobID)...)
}

func getAccount(ctx storage.Context, jobID int) Account {
	data := storage.Get(ctx, accountKey(jobID))
	if data != nil {
		return std.Deserialize(data.([]byte)).(Account)
	}

	return Account{}
}

func setTotalHeld(ctx storage.Context, value int) {
	storage.Put(ctx, totalHeldKey, value)
}
