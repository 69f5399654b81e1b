// Package common contains shared constants and sentinel errors used across
// satchel components.
package common

const (
	// KindTextNote is a plain public note.
	KindTextNote = 1

	// KindListing is a marketplace product listing
	// (parameterized replaceable, addressed by its "d" tag).
	KindListing = 30402

	// KindCartState is the client cart aggregate. Parameterized replaceable:
	// relays keep only the newest event per (author, kind, "d" tag), which is
	// exactly the snapshot semantics the sync engine relies on.
	KindCartState = 30405

	// KindBlobAuth authorizes a blob-server upload. The signed event is
	// carried base64-encoded in the Authorization header and is never
	// published to relays.
	KindBlobAuth = 24242
)

// ClientTagValue identifies events produced by this client.
const ClientTagValue = "satchel"

// DefaultCartKey is the "d" tag of the default cart aggregate.
const DefaultCartKey = "cart"
