//go:build queuedebug

package queue

const checkInvariants = true
