// Package update holds the update-check domain: the parsed configuration,
// the decision of which update (if any) applies, and the notification
// bookkeeping that turns that decision into a Result.
package update
