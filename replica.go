package gocrdt

import "github.com/google/uuid"

// ReplicaId is an opaque identifier, unique per replica for the lifetime of a
// document. It is only required to be stable across restarts if the host
// keeps it stable; the CRDT core never persists it.
type ReplicaId string

// NewReplicaID mints a fresh, practically-unique ReplicaId for a new replica.
// Hosts that need a stable identity across restarts should persist the
// returned value themselves rather than calling this on every startup.
func NewReplicaID() ReplicaId {
	return ReplicaId(uuid.NewString())
}
