package identity

import "time"

// Account is the process-durable identity of the local actor. ID is opaque,
// created once, and never regenerated while stored state exists. Registered
// reports whether the one-time remote registration has succeeded; a local
// identity stays valid either way.
type Account struct {
	ID         string
	CreatedAt  time.Time
	Registered bool
}
