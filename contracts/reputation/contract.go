package reputation

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/lazytask/lazytask-contract/common"
)

type (
	// Entry is a single record of the worker's append-only job history.
	Entry struct {
		// Settled job identifier.
		JobID int
		// Customer or arbitrator rating, 1 to 5 stars.
		Rating int
		// Bounty of the settled job.
		Bounty int
		// Block timestamp of the settlement.
		Timestamp int
	}
)

const (
	ratingSumPrefix   = 's'
	ratingCountPrefix = 'c'
	historyPrefix     = 'h'
	minScorePrefix    = 'm'

	marketplaceKey = 'x'
	badgeKey       = 'b'

	minRating = 1
	maxRating = 5

	// Badge milestones: completed-job counts at which an achievement
	// badge is issued, and the corresponding badge kinds.
	firstJobMilestone       = 1
	firstJobBadge           = 1
	reliableWorkerMilestone = 5
	reliableWorkerBadge     = 2
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	runtime.Log("reputation contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("reputation contract updated")
}

// SetMarketplace stores the Marketplace contract address which becomes the
// only caller allowed to record settled jobs. It can be invoked only by
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

// SetBadge stores the Badge contract address notified on job-count
// milestones. It can be invoked only by committee and only once. Without it,
// milestone notifications are skipped.
func SetBadge(addr interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckWitness(interop.Hash160(common.CommitteeAddress()))

	if len(addr) != interop.Hash160Len {
		panic("invalid badge address")
	}
	if storage.Get(ctx, badgeKey) != nil {
		panic("badge already set")
	}

	storage.Put(ctx, badgeKey, addr)
	runtime.Log("badge address set")
}

// RecordJob appends a settled job to the worker's history and updates the
// rating accumulators. It can be invoked only by the Marketplace contract as
// part of job settlement.
//
// When the new job count crosses a badge milestone and a Badge contract is
// configured, its mint method is called. Mint reports failure through its
// return value rather than a panic, so a failed badge issue never rolls the
// settlement back.
func RecordJob(worker interop.Hash160, jobID int, rating int, bounty int) {
	ctx := storage.GetContext()
	checkMarketplace(ctx)

	if len(worker) != interop.Hash160Len {
		panic("invalid worker address")
	}
	if rating < minRating || rating > maxRating {
		panic("rating out of range")
	}

	sumKey := workerKey(ratingSumPrefix, worker)
	cntKey := workerKey(ratingCountPrefix, worker)

	sum := getInt(ctx, sumKey) + rating
	cnt := getInt(ctx, cntKey) + 1

	storage.Put(ctx, sumKey, sum)
	storage.Put(ctx, cntKey, cnt)

	histKey := workerKey(historyPrefix, worker)
	history := common.GetList(ctx, histKey)
	history = append(history, std.Serialize(Entry{
		JobID:     jobID,
		Rating:    rating,
		Bounty:    bounty,
		Timestamp: runtime.GetTime(),
	}))
	common.SetSerialized(ctx, histKey, history)

	notifyMilestone(ctx, worker, cnt)
}

// CheckEligibility returns true if the worker's score permits accepting jobs
// of the given type. A type with no configured minimum is open to everyone.
func CheckEligibility(worker interop.Hash160, jobType string) bool {
	ctx := storage.GetReadOnlyContext()

	raw := storage.Get(ctx, typeKey(jobType))
	if raw == nil {
		return true
	}

	min := raw.(int)
	return min == 0 || scoreOf(ctx, worker) >= min
}

// SetMinReputationScore sets the minimum score required to accept jobs of
// the given type, overwriting any prior value. It can be invoked only by
// committee.
func SetMinReputationScore(jobType string, score int) {
	ctx := storage.GetContext()

	common.CheckWitness(interop.Hash160(common.CommitteeAddress()))

	if score < 0 {
		panic("invalid score")
	}

	storage.Put(ctx, typeKey(jobType), score)
}

// MinScoreOf returns the minimum score configured for the given job type,
// zero if none.
func MinScoreOf(jobType string) int {
	ctx := storage.GetReadOnlyContext()
	raw := storage.Get(ctx, typeKey(jobType))
	if raw == nil {
		return 0
	}

	return raw.(int)
}

// ScoreOf returns the worker's reputation score: the 1-5 star rating
// average scaled by 100, zero for workers with no history.
func ScoreOf(worker interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return scoreOf(ctx, worker)
}

// JobCountOf returns the number of settled jobs recorded for the worker.
func JobCountOf(worker interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getInt(ctx, workerKey(ratingCountPrefix, worker))
}

// HistoryOf returns the worker's job history in settlement order.
func HistoryOf(worker interop.Hash160) []Entry {
	ctx := storage.GetReadOnlyContext()

	raw := common.GetList(ctx, workerKey(historyPrefix, worker))
	history := make([]Entry, 0)
	for i := range raw {
		history = append(history, std.Deserialize(raw[i]).(Entry))
	}

	return history
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func notifyMilestone(ctx storage.Context, worker interop.Hash160, jobCount int) {
	var kind int
	switch jobCount {
	case firstJobMilestone:
		kind = firstJobBadge
	case reliableWorkerMilestone:
		kind = reliableWorkerBadge
	default:
		return
	}

	badge := storage.Get(ctx, badgeKey)
	if badge == nil {
		return
	}

	ok := contract.Call(badge.(interop.Hash160), "mint", contract.All, worker, kind).(bool)
	if !ok {
		runtime.Log("badge mint skipped")
	}
}

func scoreOf(ctx storage.Context, worker interop.Hash160) int {
	cnt := getInt(ctx, workerKey(ratingCountPrefix, worker))
	if cnt == 0 {
		return 0
	}

	sum := getInt(ctx, workerKey(ratingSumPrefix, worker))
	return sum * 100 / cnt
}

func checkMarketplace(ctx storage.Context) {
	mkt := storage.Get(ctx, marketplaceKey)
	if mkt == nil || !runtime.GetCallingScriptHash().Equals(mkt.(interop.Hash160)) {
		panic("only marketplace")
	}
}

func workerKey(prefix byte, worker interop.Hash160) []byte {
	return append([]byte{prefix}, worker...)
}

func typeKey(jobType string) []byte {
	return append([]byte{minScorePrefix}, []byte(jobType)...)
}

func getInt(ctx storage.Context, key []byte) int {
	raw := storage.Get(ctx, key)
	if raw != nil {
		return raw.(int)
	}

	return 0
}
