// Package transform obscures password bytes on their way to disk.
//
// The transform is a fixed single-byte XOR. It is its own inverse and keeps
// casual readers of the credentials file from seeing passwords at a glance.
// It is obfuscation only: anyone holding the file can reverse it.
package transform

// key is chosen so that printable ASCII and UTF-8 bytes never map to '\n'
// or '\r'. Only the control bytes 0x15 and 0x12 do.
const key byte = 0x1F

// Apply returns a new slice with every byte of b transformed.
// Apply(Apply(b)) == b for every b.
func Apply(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = c ^ key
	}
	return out
}

// ApplyString is Apply for strings
func ApplyString(s string) string {
	return string(Apply([]byte(s)))
}
