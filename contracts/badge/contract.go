package badge

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/lazytask/lazytask-contract/common"
)

// Badge kinds issued on job-count milestones.
const (
	FirstStep      = 1
	ReliableWorker = 2
)

const (
	symbol   = "BADGE"
	decimals = 0

	issuerKey      = 'i'
	totalSupplyKey = 's'

	ownerPrefix   = 'o'
	kindPrefix    = 'k'
	balancePrefix = 'b'
	accountPrefix = 't'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	runtime.Log("badge contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("badge contract updated")
}

// SetIssuer stores the contract allowed to mint badges, normally the
// Reputation contract. It can be invoked only by committee and only once.
func SetIssuer(addr interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckWitness(interop.Hash160(common.CommitteeAddress()))

	if len(addr) != interop.Hash160Len {
		panic("invalid issuer address")
	}
	if storage.Get(ctx, issuerKey) != nil {
		panic("issuer already set")
	}

	storage.Put(ctx, issuerKey, addr)
	runtime.Log("issuer address set")
}

// Mint issues a badge of the given kind to the owner. It can be invoked only
// by the configured issuer contract.
//
// Mint never panics: any problem is reported as a false return so that the
// issuer's enclosing transaction (a job settlement) is not rolled back by a
// badge failure.
func Mint(owner interop.Hash160, kind int) bool {
	ctx := storage.GetContext()

	issuer := storage.Get(ctx, issuerKey)
	if issuer == nil || !runtime.GetCallingScriptHash().Equals(issuer.(interop.Hash160)) {
		runtime.Log("mint rejected: only issuer")
		return false
	}
	if len(owner) != interop.Hash160Len {
		runtime.Log("mint rejected: invalid owner")
		return false
	}
	if kind != FirstStep && kind != ReliableWorker {
		runtime.Log("mint rejected: unknown badge kind")
		return false
	}

	id := totalSupply(ctx)
	storage.Put(ctx, totalSupplyKey, id+1)

	storage.Put(ctx, tokenKey(ownerPrefix, id), owner)
	storage.Put(ctx, tokenKey(kindPrefix, id), kind)
	storage.Put(ctx, accountTokenKey(owner, id), kind)

	balKey := append([]byte{balancePrefix}, owner...)
	bal := 0
	if raw := storage.Get(ctx, balKey); raw != nil {
		bal = raw.(int)
	}
	storage.Put(ctx, balKey, bal+1)

	runtime.Notify("BadgeMinted", owner, id, kind)
	return true
}

// Transfer always fails: badges are soulbound and stay with the worker that
// earned them.
func Transfer(to interop.Hash160, tokenID []byte, data any) bool {
	panic("badge is soulbound")
}

// Symbol returns the badge token symbol.
func Symbol() string {
	return symbol
}

// Decimals returns the badge token precision. Badges are indivisible.
func Decimals() int {
	return decimals
}

// TotalSupply returns the number of badges ever minted.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return totalSupply(ctx)
}

// BalanceOf returns the number of badges held by the owner.
func BalanceOf(owner interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()

	raw := storage.Get(ctx, append([]byte{balancePrefix}, owner...))
	if raw == nil {
		return 0
	}

	return raw.(int)
}

// OwnerOf returns the holder of the given badge.
func OwnerOf(tokenID int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()

	raw := storage.Get(ctx, tokenKey(ownerPrefix, tokenID))
	if raw == nil {
		panic("token not found")
	}

	return raw.(interop.Hash160)
}

// BadgeTypeOf returns the kind of the given badge.
func BadgeTypeOf(tokenID int) int {
	ctx := storage.GetReadOnlyContext()

	raw := storage.Get(ctx, tokenKey(kindPrefix, tokenID))
	if raw == nil {
		panic("token not found")
	}

	return raw.(int)
}

// TokensOf returns an iterator over badge kinds held by the owner.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{accountPrefix}, owner...), storage.ValuesOnly)
}

// Properties returns human-readable attributes of the given badge.
func Properties(tokenID int) map[string]string {
	kind := BadgeTypeOf(tokenID)

	name := "Unknown"
	switch kind {
	case FirstStep:
		name = "First Step"
	case ReliableWorker:
		name = "Reliable Worker"
	}

	return map[string]string{
		"name": name,
	}
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func totalSupply(ctx storage.Context) int {
	raw := storage.Get(ctx, totalSupplyKey)
	if raw != nil {
		return raw.(int)
	}

	return 0
}

func tokenKey(prefix byte, tokenID int) []byte {
	return append([]byte{prefix}, convert.ToBytes(tokenID)...)
}

func accountTokenKey(owner interop.Hash160, tokenID int) []byte {
	return append(append([]byte{accountPrefix}, owner...), convert.ToBytes(tokenID)...)
}
