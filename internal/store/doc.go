// Package store keeps the credential collection.
//
// Records are held in memory sorted by website and rewritten to a text file
// after every mutation. The file carries three lines per record:
//
//	username
//	password (obscured with transform.Apply)
//	website
//
// A trailing group of fewer than three lines is ignored on load.
//
// A Store is not safe for concurrent use and assumes it is the only writer
// of its file.
package store
