// Package git checks that keeppass files are kept out of version control.
//
// The credentials file is only obscured, not encrypted, so committing it
// would publish every password. Status uses this package to warn about it.
package git
