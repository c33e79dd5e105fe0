// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Initialization, once at startup:
//     err := timezone.Init(cfg.App.Timezone)   // e.g. "Asia/Jakarta"
//
//  2. Current time and conversion:
//     now := timezone.Now()
//     appTime := timezone.ToAppTime(someTime)
//
//  3. Calendar dates and wall clock values used by reservations:
//     day, err := timezone.ParseDate("2024-01-01")
//     start, err := timezone.ParseClock("09:00")
//
// Supported timezone formats:
// - Standard timezone names only: "UTC", "Asia/Jakarta", "America/New_York", "Europe/London"
//
// Without Init the package works in UTC.
package timezone
