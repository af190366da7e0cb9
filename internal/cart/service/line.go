// Package service holds the persisted shopping cart and the reconciliation of
// cart quantities against catalog products and provider prices.
package service

// Line is one persisted cart entry. The wire names match the durable
// record: a cart serializes as a sequence of {id, qty}.
type Line struct {
	ProductID string `json:"id"`
	Quantity  int64  `json:"qty"`
}

// sanitize enforces the cart invariants on loaded data: at most one line
// per product id, every quantity at least 1. Order is preserved and the
// first occurrence of a duplicate wins.
func sanitize(lines []Line) []Line {
	seen := make(map[string]struct{}, len(lines))
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity < 1 {
			continue
		}
		if _, dup := seen[line.ProductID]; dup {
			continue
		}
		seen[line.ProductID] = struct{}{}
		out = append(out, line)
	}
	return out
}
