// Package cart reconciles the client-local cart aggregate with the latest
// snapshot retrievable from the relay network.
package cart

import "github.com/dmitrijs2005/satchel/internal/client/models"

// Merge combines a local working copy with the last durably-published remote
// snapshot. Union with remote precedence:
//
//   - item present on both sides: the remote quantity/price wins (remote is
//     the last published truth, possibly written from another device);
//   - item present only locally: kept, so an edit made since the last
//     successful publish is never silently dropped;
//   - item present only remotely: added.
//
// Remote items come first in the result, local-only items follow in their
// local order, which keeps the output deterministic. UpdatedAt is the max of
// both sides. A nil remote (nothing published yet) leaves the local snapshot
// unchanged.
//
// This is a deliberate heuristic, not a commutative CRDT merge: two clients
// racing a publish of the same item's quantity resolve to "last publisher
// wins" at the relay layer.
func Merge(local, remote *models.CartSnapshot) *models.CartSnapshot {
	if local == nil {
		local = &models.CartSnapshot{}
	}
	if remote == nil {
		out := local.Clone()
		out.Normalize()
		return out
	}

	out := &models.CartSnapshot{UpdatedAt: max(local.UpdatedAt, remote.UpdatedAt)}

	seen := make(map[string]struct{}, len(remote.Items))
	for _, it := range remote.Items {
		out.Items = append(out.Items, it)
		seen[it.ProductID] = struct{}{}
	}
	for _, it := range local.Items {
		if _, ok := seen[it.ProductID]; !ok {
			out.Items = append(out.Items, it)
		}
	}

	out.Normalize()
	return out
}
