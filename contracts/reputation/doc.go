/*
Package reputation implements the Reputation contract of the LazyTask suite.

Reputation contract accumulates worker ratings from settled jobs and derives
a score from them: the 1-5 star average scaled by 100, so a worker rated 5
stars every time scores 500. The score gates job acceptance (per-job-type
minimums set by committee) and feeds the Marketplace fee tier policy.

The full settlement history of every worker is kept append-only and is never
pruned.

Only the Marketplace contract may record jobs; the record path also notifies
the Badge contract when a worker's job count crosses an achievement
milestone (1 and 5 completed jobs). Badge minting is fire-and-forget: a
failed mint is logged and ignored, it never rolls back the settlement.

# Contract notifications

Reputation contract does not produce notifications to process.
*/
package reputation

/*
Contract storage model.

# Summary
Key-value storage format:
 - 's' + worker -> int
   sum of all ratings given to the worker
 - 'c' + worker -> int
   number of settled jobs recorded for the worker
 - 'h' + worker -> std.Serialize([]std.Serialize(Entry))
   append-only settlement history (Entry is a structure defined in current package)
 - 'm' + jobType -> int
   minimum score required to accept jobs of the type
 - 'x' -> interop.Hash160
   address of the Marketplace contract
 - 'b' -> interop.Hash160
   address of the Badge contract, optional
*/
