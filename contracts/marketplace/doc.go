/*
Package marketplace implements the Marketplace contract of the LazyTask
suite, the state machine that drives a job from posting to settlement.

A customer posts a job with a bounty (escrowed immediately) and a bond the
worker will have to match. A worker whose reputation passes the job type's
eligibility gate accepts the job by escrowing exactly that bond. From there
the job either completes (customer or oracle settles it with a 1-5 star
rating) or the worker disputes it and an arbitrator settles it either way.

	Posted -> Accepted -> {Completed | Disputed}
	Disputed -> {Completed | Rejected}

Completed and Rejected are terminal. Settlement in the worker's favor pays
bounty-fee+bond to the worker and the fee to the treasury, with the fee tier
derived from the worker's reputation before the job is recorded; settlement
against the worker refunds bounty+bond to the customer and forfeits the
bond. Either way funds move exactly once per job, which the Escrow contract
enforces by destroying the job's escrow account on first settlement.

Job status is written to storage before any cross-contract call, so no
external code can observe or reenter a half-settled job.

# Contract notifications

JobPosted notification. Emitted when a customer posts and funds a job.

	JobPosted:
	  - name: jobID
	    type: Integer
	  - name: customer
	    type: Hash160
	  - name: bounty
	    type: Integer
	  - name: bond
	    type: Integer

JobAccepted notification. Emitted when a worker bonds to a job.

	JobAccepted:
	  - name: jobID
	    type: Integer
	  - name: worker
	    type: Hash160

EvidenceSubmitted notification. Emitted when the worker stores an evidence
reference for an accepted job.

	EvidenceSubmitted:
	  - name: jobID
	    type: Integer
	  - name: worker
	    type: Hash160
	  - name: evidence
	    type: String

JobCompleted notification. Emitted when a job settles in the worker's favor,
after FeeTaken.

	JobCompleted:
	  - name: jobID
	    type: Integer
	  - name: worker
	    type: Hash160
	  - name: rating
	    type: Integer

JobDisputed notification. Emitted when the worker escalates a job to
arbitration.

	JobDisputed:
	  - name: jobID
	    type: Integer
	  - name: worker
	    type: Hash160
	  - name: evidence
	    type: String

JobResolved notification. Emitted when an arbitrator rules on a dispute,
before the settlement events of the chosen outcome.

	JobResolved:
	  - name: jobID
	    type: Integer
	  - name: arbitrator
	    type: Hash160
	  - name: workerWins
	    type: Boolean

JobSlashed notification. Emitted when a job closes against the worker and
the bond is forfeited.

	JobSlashed:
	  - name: jobID
	    type: Integer
	  - name: worker
	    type: Hash160
	  - name: amount
	    type: Integer

FeeTaken notification. Emitted on settlement in the worker's favor with the
fee withheld and the bounty net of fee.

	FeeTaken:
	  - name: jobID
	    type: Integer
	  - name: fee
	    type: Integer
	  - name: netPayout
	    type: Integer
*/
package marketplace

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'j' + jobID -> std.Serialize(Job)
   all jobs ever posted (Job is a structure defined in current package)
 - 'i' -> int
   identifier assigned to the next posted job
 - 't' -> std.Serialize([][]byte)
   job type labels, deduplicated, in first-seen order
 - 'o' + address -> bool
   oracle capability marker
 - 'a' + address -> bool
   arbitrator capability marker
 - 'w' -> interop.Hash160
   contract owner, administers roles, treasury and fee ceiling
 - 'y' -> interop.Hash160
   treasury address receiving fees
 - 'f' -> int
   fee ceiling in basis points the tiered fee is clamped to
 - 'e' -> interop.Hash160
   address of the Escrow contract
 - 'r' -> interop.Hash160
   address of the Reputation contract
*/
