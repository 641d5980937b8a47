// Package subscription implements the reminder permission state machine.
//
// Process-wide reminder state is a permission value (unrequested, granted,
// denied, unsupported) coupled to an "armed" flag — the user's choice to
// receive reminders. Both live in one mutex-guarded Machine so the invariant
// holds by construction: armed can only be true while permission is granted,
// and any transition away from granted disarms.
//
// # State table
//
//	permission   armed=false          armed=true
//	unrequested  reachable (initial)  unreachable
//	granted      reachable            reachable (only row where armed may be true)
//	denied       reachable (sticky)   unreachable
//	unsupported  reachable (terminal) unreachable
//
// Unsupported is probed once at construction and never leaves; denied is
// sticky for the process lifetime — recovery happens outside (host settings)
// and is picked up by re-reading the host's value on the next startup.
package subscription
