package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/illarion/keeppass/internal/transform"
)

const linesPerRecord = 3

// Encode writes records in the three-line file format.
// Passwords are obscured, usernames and websites are written verbatim.
func Encode(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		for _, line := range []string{r.Username, transform.ApplyString(r.Password), r.Website} {
			if _, err := bw.WriteString(line); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
	}
	return bw.Flush()
}

// Decode reads records written by Encode. Only '\n' separates lines, and the
// last line may be unterminated. A trailing group of one or two lines is
// dropped without error.
func Decode(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	var (
		records []Record
		group   = make([]string, 0, linesPerRecord)
	)

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return records, fmt.Errorf("failed to read credentials: %w", err)
		}
		eof := err != nil

		if !eof || line != "" {
			group = append(group, strings.TrimSuffix(line, "\n"))
		}
		if len(group) == linesPerRecord {
			records = append(records, Record{
				Username: group[0],
				Password: transform.ApplyString(group[1]),
				Website:  group[2],
			})
			group = group[:0]
		}

		if eof {
			return records, nil
		}
	}
}
