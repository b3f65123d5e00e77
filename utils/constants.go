// File: utils/constants.go
package utils

import "time"

// DirectoryCachePrefix is the prefix used for identity directory cache keys.
const DirectoryCachePrefix = "directory:"

// DirectoryCacheTTL is the time-to-live for identity directory cache entries.
const DirectoryCacheTTL = 5 * time.Minute

// PaymentLockPrefix namespaces per-booking charge locks.
const PaymentLockPrefix = "payment-lock:"

// PaymentLockTTL bounds how long a charge attempt may hold its booking lock.
const PaymentLockTTL = 30 * time.Second
