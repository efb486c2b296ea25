/*
Package badge implements the Badge contract of the LazyTask suite.

Badge contract issues non-transferable achievement badges to workers when
their completed-job count crosses a milestone: "First Step" after the first
job, "Reliable Worker" after the fifth. Only the Reputation contract may
mint; any transfer attempt fails, badges stay with the worker that earned
them.

Mint reports failure through its return value instead of panicking, so the
Reputation contract can call it from the settlement path without risking a
rollback of the settlement itself.

# Contract notifications

BadgeMinted notification. Emitted on every successful mint.

	BadgeMinted:
	  - name: owner
	    type: Hash160
	  - name: tokenID
	    type: Integer
	  - name: kind
	    type: Integer
*/
package badge

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'i' -> interop.Hash160
   address of the issuing contract (Reputation)
 - 's' -> int
   number of badges ever minted
 - 'o' + tokenID -> interop.Hash160
   badge holder
 - 'k' + tokenID -> int
   badge kind
 - 'b' + owner -> int
   number of badges held by the owner
 - 't' + owner + tokenID -> int
   per-owner badge index, value is the badge kind
*/
