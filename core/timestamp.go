package core

import "time"

// Timestamp is unsigned 64-bit nanoseconds since the Unix epoch. This is the
// pinned unit for the object hasher's datetime primitive (§4.2 / §9 open
// question resolution).
type Timestamp uint64

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().UnixNano())
}

// Time converts a Timestamp back to a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

// Add returns t advanced by d.
func (t Timestamp) Add(d time.Duration) Timestamp {
	return Timestamp(int64(t) + int64(d))
}

// AdminKeypairLifetime is the validity window granted to the admin signing
// credential created in the genesis block: ten years, matching the
// original implementation's ADMIN_KEYPAIR_LIFETIME constant
// (315,532,800 seconds).
const AdminKeypairLifetime = 315_532_800 * time.Second
