package jobstate

// Type is an enumeration for job lifecycle states.
type Type int

// Job lifecycle states. A job starts as Posted and ends as either
// Completed or Rejected; terminal states are never left.
const (
	// Posted stands for a funded job waiting for a worker.
	Posted Type = iota

	// Accepted stands for a job taken by a bonded worker.
	Accepted

	// Completed stands for a settled job paid out to the worker.
	Completed

	// Disputed stands for a job escalated by the worker for arbitration.
	Disputed

	// Rejected stands for a job closed against the worker with a full
	// refund to the customer.
	Rejected
)
