// Package core provides the keeppass vault operations around the
// credential store.
//
// Core operations include:
//   - Init / VerifyPassword / ChangePassword: the master password gate
//   - Credentials: open the sorted credential store
//   - Snapshot / Restore / Diff: point-in-time copies kept in the meta db
//   - Export / Import: YAML transfer of credentials
//   - Status: vault overview that needs no password
package core
