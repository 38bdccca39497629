//go:build !queuedebug

package queue

// checkInvariants enables O(n) partition verification after every rebuild.
// Build with -tags queuedebug to turn it on.
const checkInvariants = false
