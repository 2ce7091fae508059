// Package registry holds the process-wide lifetime state behind singularity:
// a created flag per payload type and an instance slot per
// (payload type, locking policy) pair.
//
// The asymmetry between the two keys is deliberate. The created flag is
// keyed by type alone, so at most one live instance of a type exists no
// matter which policy or constructor signature produced it. The slot is
// keyed by type and policy, so a destroy issued under a different policy
// than the matching create finds the flag set but its own slot empty —
// that is the detection signal for a policy mismatch.
//
// The registry performs no validation and takes no lifetime decisions; it
// is plain guarded storage. Sequencing of create/destroy transitions is the
// manager's job, protected by the caller-selected locking policy.
package registry
