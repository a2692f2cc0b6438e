package purchasing

import "fmt"

// OverReceiptPolicy decides what happens when a reception would push a
// line's cumulative received quantity past its ordered quantity.
type OverReceiptPolicy string

const (
	// PolicyReject fails the reception before any write
	PolicyReject OverReceiptPolicy = "reject"
	// PolicyClamp truncates the received quantity to the remaining quantity
	PolicyClamp OverReceiptPolicy = "clamp"
	// PolicyAllow receives in full and logs a warning
	PolicyAllow OverReceiptPolicy = "allow"
)

// ParseOverReceiptPolicy parses a policy from configuration.
// An empty string resolves to the default, PolicyReject.
func ParseOverReceiptPolicy(s string) (OverReceiptPolicy, error) {
	switch OverReceiptPolicy(s) {
	case PolicyReject, PolicyClamp, PolicyAllow:
		return OverReceiptPolicy(s), nil
	case "":
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown over-receipt policy %q", s)
	}
}
