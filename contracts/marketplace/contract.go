package marketplace

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/lazytask/lazytask-contract/common"
	"github.com/lazytask/lazytask-contract/contracts/marketplace/feetier"
	"github.com/lazytask/lazytask-contract/contracts/marketplace/jobstate"
)

type (
	// Job is a single escrowed task posted by a customer.
	Job struct {
		// Sequential identifier assigned at posting.
		ID int
		// Customer that posted and funded the job.
		Customer interop.Hash160
		// Worker bonded to the job, empty until acceptance.
		Worker interop.Hash160
		// Escrowed bounty amount.
		Bounty int
		// Bond the worker must escrow to accept.
		Bond int
		// Freeform label used for eligibility gating and filtering.
		JobType string
		// Evidence reference (URL or hash) submitted by the worker.
		Evidence string
		// Lifecycle state, see the jobstate package.
		Status jobstate.Type
		// Block timestamp of posting, audit only.
		PostedAt int
	}
)

const (
	jobPrefix        = 'j'
	oraclePrefix     = 'o'
	arbitratorPrefix = 'a'

	nextJobIDKey    = 'i'
	jobTypesKey     = 't'
	ownerKey        = 'w'
	treasuryKey     = 'y'
	platformFeeKey  = 'f'
	escrowKey       = 'e'
	reputationKey   = 'r'

	minRating = 1
	maxRating = 5
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]any)

	if isUpdate {
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	owner := args[0].(interop.Hash160)
	addrEscrow := args[1].(interop.Hash160)
	addrReputation := args[2].(interop.Hash160)
	treasury := args[3].(interop.Hash160)

	if len(owner) != interop.Hash160Len ||
		len(addrEscrow) != interop.Hash160Len ||
		len(addrReputation) != interop.Hash160Len {
		panic("invalid deploy arguments")
	}
	if !isUsableTreasury(treasury) {
		panic("invalid treasury address")
	}

	storage.Put(ctx, ownerKey, owner)
	storage.Put(ctx, escrowKey, addrEscrow)
	storage.Put(ctx, reputationKey, addrReputation)
	storage.Put(ctx, treasuryKey, treasury)
	storage.Put(ctx, platformFeeKey, feetier.MaxBps)

	runtime.Log("marketplace contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("marketplace contract updated")
}

// PostJob creates a new job in Posted state and escrows the bounty pulled
// from the customer, whose witness must be present in the carrier
// transaction. Bond is the amount a worker will have to escrow to accept the
// job; it may be zero. Returns the new job identifier.
//
// No eligibility check happens at posting, only customer-side funding.
func PostJob(customer interop.Hash160, jobType string, bond int, bounty int) int {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(customer)

	if bounty <= 0 {
		panic("bounty must be positive")
	}
	if bond < 0 {
		panic("negative amount")
	}

	id := nextJobID(ctx)
	storage.Put(ctx, nextJobIDKey, id+1)

	job := Job{
		ID:       id,
		Customer: customer,
		Bounty:   bounty,
		Bond:     bond,
		JobType:  jobType,
		Status:   jobstate.Posted,
		PostedAt: runtime.GetTime(),
	}
	putJob(ctx, job)
	registerJobType(ctx, jobType)

	contract.Call(escrowHash(ctx), "depositBounty", contract.All,
		id, customer, bounty)

	runtime.Notify("JobPosted", id, customer, bounty, bond)
	return id
}

// AcceptJob bonds a worker to a Posted job. The bond payment must match the
// job's bond exactly, partial or excess deposits are rejected as a whole.
// The worker must pass the reputation eligibility gate of the job's type.
func AcceptJob(worker interop.Hash160, jobID int, bondPayment int) {
	ctx := storage.GetContext()

	job := getJob(ctx, jobID)

	if len(worker) != interop.Hash160Len {
		panic("invalid worker address")
	}
	common.CheckOwnerWitness(worker)

	if job.Status != jobstate.Posted {
		panic("job not posted")
	}
	if bondPayment != job.Bond {
		panic("bond mismatch")
	}

	eligible := contract.Call(reputationHash(ctx), "checkEligibility",
		contract.ReadOnly, worker, job.JobType).(bool)
	if !eligible {
		panic("worker not eligible")
	}

	job.Worker = worker
	job.Status = jobstate.Accepted
	putJob(ctx, job)

	contract.Call(escrowHash(ctx), "depositBond", contract.All,
		jobID, worker, bondPayment)

	runtime.Notify("JobAccepted", jobID, worker)
}

// SubmitEvidence stores the worker's evidence reference for an Accepted job.
// Resubmission overwrites the prior value and is allowed while the job stays
// Accepted.
//
// The worker identity is checked before the job status, so a wrong caller
// gets "only worker" even when the job is not in Accepted state (including
// Posted jobs whose worker is still unset).
func SubmitEvidence(worker interop.Hash160, jobID int, evidence string) {
	ctx := storage.GetContext()

	job := getJob(ctx, jobID)
	checkJobWorker(job, worker)

	if job.Status != jobstate.Accepted {
		panic("job not accepted")
	}
	if len(evidence) == 0 {
		panic("empty evidence")
	}

	job.Evidence = evidence
	putJob(ctx, job)

	runtime.Notify("EvidenceSubmitted", jobID, worker, evidence)
}

// CompleteJob settles an Accepted job in the worker's favor. It can be
// invoked by the job's customer or by an oracle. Rating is the 1-5 star
// rating given to the worker.
//
// The fee tier is derived from the worker's reputation as it stands before
// this job is recorded. Settlement pays bounty-fee+bond to the worker and
// the fee to the treasury, then records the job in the Reputation contract.
func CompleteJob(caller interop.Hash160, jobID int, rating int) {
	ctx := storage.GetContext()

	job := getJob(ctx, jobID)

	if job.Status != jobstate.Accepted {
		panic("job not accepted")
	}
	if !caller.Equals(job.Customer) && !isOracle(ctx, caller) {
		panic("only customer or oracle")
	}
	common.CheckWitness(caller)

	if rating < minRating || rating > maxRating {
		panic("rating out of range")
	}

	settle(ctx, job, rating)
}

// DisputeJob escalates an Accepted job to arbitration. Only the job's worker
// may dispute; evidence overwrites any previously submitted value. No funds
// move until the dispute is resolved.
func DisputeJob(worker interop.Hash160, jobID int, evidence string) {
	ctx := storage.GetContext()

	job := getJob(ctx, jobID)
	checkJobWorker(job, worker)

	if job.Status != jobstate.Accepted {
		panic("job not accepted")
	}

	job.Evidence = evidence
	job.Status = jobstate.Disputed
	putJob(ctx, job)

	runtime.Notify("JobDisputed", jobID, worker, evidence)
}

// ResolveDispute closes a Disputed job. It can be invoked only by an
// arbitrator. If the worker wins, settlement is identical to CompleteJob
// with the given rating. Otherwise the whole bounty+bond is refunded to the
// customer, the bond is forfeited and no reputation entry is recorded for
// the worker.
func ResolveDispute(arbitrator interop.Hash160, jobID int, workerWins bool, rating int) {
	ctx := storage.GetContext()

	job := getJob(ctx, jobID)

	if job.Status != jobstate.Disputed {
		panic("job not disputed")
	}
	if !isArbitrator(ctx, arbitrator) {
		panic("only arbitrator")
	}
	common.CheckWitness(arbitrator)

	runtime.Notify("JobResolved", jobID, arbitrator, workerWins)

	if workerWins {
		if rating < minRating || rating > maxRating {
			panic("rating out of range")
		}
		settle(ctx, job, rating)
		return
	}

	reject(ctx, job)
}

// SlashBond is a legacy administrative path equivalent to resolving a
// dispute against the worker. It can be invoked only by the contract owner
// on a Disputed job.
func SlashBond(jobID int) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(ownerOf(ctx))

	job := getJob(ctx, jobID)
	if job.Status != jobstate.Disputed {
		panic("job not disputed")
	}

	reject(ctx, job)
}

// AddOracle grants the oracle capability to the given address. Oracles may
// complete jobs on behalf of customers. It can be invoked only by the
// contract owner.
func AddOracle(addr interop.Hash160) {
	setRole(oraclePrefix, addr, true)
}

// RemoveOracle revokes the oracle capability. It can be invoked only by the
// contract owner.
func RemoveOracle(addr interop.Hash160) {
	setRole(oraclePrefix, addr, false)
}

// AddArbitrator grants the arbitrator capability to the given address.
// Arbitrators resolve disputed jobs. It can be invoked only by the contract
// owner.
func AddArbitrator(addr interop.Hash160) {
	setRole(arbitratorPrefix, addr, true)
}

// RemoveArbitrator revokes the arbitrator capability. It can be invoked only
// by the contract owner.
func RemoveArbitrator(addr interop.Hash160) {
	setRole(arbitratorPrefix, addr, false)
}

// IsOracle returns true if the given address holds the oracle capability.
func IsOracle(addr interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isOracle(ctx, addr)
}

// IsArbitrator returns true if the given address holds the arbitrator
// capability.
func IsArbitrator(addr interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isArbitrator(ctx, addr)
}

// SetTreasury overrides the fee destination address. It can be invoked only
// by the contract owner.
func SetTreasury(addr interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(ownerOf(ctx))

	if !isUsableTreasury(addr) {
		panic("invalid treasury address")
	}

	storage.Put(ctx, treasuryKey, addr)
}

// SetPlatformFee sets the ceiling, in basis points, the tiered fee is
// clamped to. The default is 10000, which leaves the tier policy in full
// control. It can be invoked only by the contract owner.
func SetPlatformFee(bps int) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(ownerOf(ctx))

	if bps < 0 {
		panic("invalid fee")
	}
	if bps > feetier.MaxBps {
		panic("fee exceeds limit")
	}

	storage.Put(ctx, platformFeeKey, bps)
}

// GetJob returns the job with the given identifier.
func GetJob(jobID int) Job {
	ctx := storage.GetReadOnlyContext()
	return getJob(ctx, jobID)
}

// GetActiveJobTypes returns every job type ever posted, deduplicated, in
// first-seen order.
func GetActiveJobTypes() []string {
	ctx := storage.GetReadOnlyContext()

	raw := common.GetList(ctx, jobTypesKey)
	types := make([]string, 0)
	for i := range raw {
		types = append(types, string(raw[i]))
	}

	return types
}

// NextJobID returns the identifier the next posted job will receive.
func NextJobID() int {
	ctx := storage.GetReadOnlyContext()
	return nextJobID(ctx)
}

// Treasury returns the current fee destination address.
func Treasury() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, treasuryKey).(interop.Hash160)
}

// PlatformFee returns the fee ceiling in basis points.
func PlatformFee() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, platformFeeKey).(int)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// settle pays out an Accepted or Disputed job to the worker and records the
// rating. The status write happens before any external call.
func settle(ctx storage.Context, job Job, rating int) {
	rep := reputationHash(ctx)

	score := contract.Call(rep, "scoreOf", contract.ReadOnly, job.Worker).(int)
	count := contract.Call(rep, "jobCountOf", contract.ReadOnly, job.Worker).(int)

	feeBps := feetier.FeeBps(score, count)
	feeCap := storage.Get(ctx, platformFeeKey).(int)
	if feeBps > feeCap {
		feeBps = feeCap
	}

	fee := job.Bounty * feeBps / feetier.MaxBps
	workerPayout := job.Bounty - fee + job.Bond

	job.Status = jobstate.Completed
	putJob(ctx, job)

	treasury := storage.Get(ctx, treasuryKey).(interop.Hash160)
	contract.Call(escrowHash(ctx), "payout", contract.All,
		job.ID, job.Worker, workerPayout, treasury, fee)

	contract.Call(rep, "recordJob", contract.All,
		job.Worker, job.ID, rating, job.Bounty)

	runtime.Notify("FeeTaken", job.ID, fee, job.Bounty-fee)
	runtime.Notify("JobCompleted", job.ID, job.Worker, rating)
}

// reject closes a job against the worker: full refund to the customer, bond
// forfeited, no reputation entry.
func reject(ctx storage.Context, job Job) {
	job.Status = jobstate.Rejected
	putJob(ctx, job)

	contract.Call(escrowHash(ctx), "refund", contract.All, job.ID)

	runtime.Notify("JobSlashed", job.ID, job.Worker, job.Bond)
}

// checkJobWorker panics unless the caller is the job's bonded worker. An
// unset worker never matches.
func checkJobWorker(job Job, worker interop.Hash160) {
	if len(job.Worker) != interop.Hash160Len || !worker.Equals(job.Worker) {
		panic("only worker")
	}
	common.CheckWitness(worker)
}

func setRole(prefix byte, addr interop.Hash160, grant bool) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(ownerOf(ctx))

	if len(addr) != interop.Hash160Len {
		panic("invalid address")
	}

	key := roleKey(prefix, addr)
	if grant {
		storage.Put(ctx, key, true)
	} else {
		storage.Delete(ctx, key)
	}
}

func isOracle(ctx storage.Context, addr interop.Hash160) bool {
	return storage.Get(ctx, roleKey(oraclePrefix, addr)) != nil
}

func isArbitrator(ctx storage.Context, addr interop.Hash160) bool {
	return storage.Get(ctx, roleKey(arbitratorPrefix, addr)) != nil
}

func roleKey(prefix byte, addr interop.Hash160) []byte {
	return append([]byte{prefix}, addr...)
}

func ownerOf(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func escrowHash(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, escrowKey).(interop.Hash160)
}

func reputationHash(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, reputationKey).(interop.Hash160)
}

func nextJobID(ctx storage.Context) int {
	raw := storage.Get(ctx, nextJobIDKey)
	if raw != nil {
		return raw.(int)
	}

	return 0
}

func registerJobType(ctx storage.Context, jobType string) {
	types := common.GetList(ctx, jobTypesKey)
	for i := range types {
		if string(types[i]) == jobType {
			return
		}
	}

	types = append(types, []byte(jobType))
	common.SetSerialized(ctx, jobTypesKey, types)
}

func putJob(ctx storage.Context, job Job) {
	common.SetSerialized(ctx, jobKey(job.ID), job)
}

func getJob(ctx storage.Context, jobID int) Job {
	data := storage.Get(ctx, jobKey(jobID))
	if data == nil {
		panic("job not found")
	}

	return std.Deserialize(data.([]byte)).(Job)
}

func jobKey(jobID int) []byte {
	return append([]byte{jobPrefix}, convert.ToBytes(jobID)...)
}

func isUsableTreasury(addr interop.Hash160) bool {
	if len(addr) != interop.Hash160Len {
		return false
	}

	for i := range addr {
		if addr[i] != 0 {
			return true
		}
	}

	return false
}
