// Package storage provides the BBolt meta database for keeppass.
//
// The meta database sits next to the credentials file and uses two buckets:
//   - config: master password verifier (salt, iterations, hash), vault id,
//     timestamps
//   - snapshots: copies of the encoded credentials file, keyed by a
//     monotonically increasing id
//
// The credentials file itself is not stored here. Snapshots hold it in the
// same obscured form it has on disk.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
