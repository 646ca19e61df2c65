package models

type UserRole string

const (
	UserRoleAdmin    UserRole = "Admin"
	UserRoleOperator UserRole = "Operator"
)

// TrafficSource distinguishes how a public menu request arrived.
type TrafficSource string

const (
	TrafficSourceDirect TrafficSource = "direct"
	TrafficSourceQr     TrafficSource = "qr"
)

// ParseTrafficSource maps the raw ?source= value. Anything but "qr" counts
// as a direct visit, unknown values included.
func ParseTrafficSource(raw string) TrafficSource {
	if TrafficSource(raw) == TrafficSourceQr {
		return TrafficSourceQr
	}
	return TrafficSourceDirect
}
