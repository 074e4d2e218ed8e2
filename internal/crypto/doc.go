// Package crypto hashes and checks the keeppass master password.
//
// The master password is never stored. init keeps a PBKDF2-HMAC-SHA256
// verifier instead:
//   - 32-byte random salt
//   - 210,000 iterations (OWASP minimum recommendation)
//   - 32-byte derived hash, compared in constant time
//
// The credentials themselves are not encrypted with this key; see package
// transform for what happens to them on disk.
//
// Memory safety:
//   - Use ClearBytes() to zero passwords after use
package crypto
