package model

// Identity is an authenticated caller identity (an account address or similar opaque id).
type Identity string

// LogicalTime is a reading of the monotonic logical clock, in seconds.
type LogicalTime uint64

// Clock supplies the logical time of the current request.
type Clock interface {
	Now() LogicalTime
}

// Bounds for user-supplied strings.
const (
	MaxIdentityLength     = 128
	MaxDeviceIDLength     = 64
	MaxDeviceTypeLength   = 64
	MaxConsumerTypeLength = 64
	MaxPurposeLength      = 256
)
