/*
Package escrow implements the Escrow contract of the LazyTask suite.

Escrow contract is the custodian of all GAS locked for open jobs. Funds flow
in when the Marketplace contract opens a job (bounty) or bonds a worker to
it (bond), and flow out exactly once per job: either split between the
worker and the treasury on settlement, or returned whole to the customer on
refund. The contract keeps a running total of held funds, so at any moment
its aggregate balance equals the sum of bounty+bond over all live jobs.

Every fund-moving method is restricted to the Marketplace contract; the
escrow itself makes no lifecycle decisions.

# Contract notifications

Escrow contract does not produce notifications of its own; fund movements
are observable through the native GAS contract Transfer notifications.
*/
package escrow

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'a' + jobID -> std.Serialize(Account)
   escrow account of a live job (Account is a structure defined in current package)
 - 'h' -> int
   total amount of GAS held for all live jobs
 - 'm' -> interop.Hash160
   address of the Marketplace contract

# Settlement
A job account is deleted before its funds leave the contract, so a second
settlement attempt on the same job fails before any transfer happens.
*/
