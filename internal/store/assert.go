//go:build !keeppassdebug

package store

const checkSorted = false
