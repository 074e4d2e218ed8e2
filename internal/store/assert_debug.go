//go:build keeppassdebug

package store

const checkSorted = true
