// Package normalize converts the backend's heterogeneous news and stock
// payloads into the canonical records in types. At least three payload
// versions are live across the upstream APIs; every field that ever had
// an alternate name resolves through an ordered alias chain here, so the
// rest of the service only ever sees one shape.
package normalize

// firstString returns the first non-empty value in alias priority order.
func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstFloat returns the first non-nil value in alias priority order,
// defaulting to 0 when every alias is absent.
func firstFloat(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}
