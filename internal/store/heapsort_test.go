package store

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
)

func websites(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Website
	}
	return out
}

func TestSortByWebsite(t *testing.T) {
	tests := []struct {
		name  string
		input []string
	}{
		{"empty", nil},
		{"single", []string{"a.com"}},
		{"sorted", []string{"a.com", "b.com", "c.com"}},
		{"reversed", []string{"z.com", "m.com", "b.com", "a.com"}},
		{"mixed case", []string{"bank.com", "Bank.com", "BANK.com"}},
		{"prefixes", []string{"site.com.au", "site", "site.com"}},
		{"duplicates", []string{"x.com", "a.com", "x.com", "a.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]Record, len(tt.input))
			for i, w := range tt.input {
				records[i] = Record{Website: w, Username: fmt.Sprint(i)}
			}

			sortByWebsite(records)

			want := append([]string(nil), tt.input...)
			sort.Strings(want)
			got := websites(records)
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("sortByWebsite() = %v, want %v", got, want)
				}
			}
		})
	}
}

func TestSortByWebsite_KeepsRecordsIntact(t *testing.T) {
	records := []Record{
		{Username: "carol", Password: "3", Website: "c.com"},
		{Username: "alice", Password: "1", Website: "a.com"},
		{Username: "bob", Password: "2", Website: "b.com"},
	}

	sortByWebsite(records)

	for i, wantUser := range []string{"alice", "bob", "carol"} {
		if records[i].Username != wantUser {
			t.Errorf("records[%d].Username = %s, want %s", i, records[i].Username, wantUser)
		}
	}
}

func TestSortByWebsite_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		records := make([]Record, n)
		for i := range records {
			records[i] = Record{Website: fmt.Sprintf("site-%d.com", rng.Intn(1000))}
		}

		sortByWebsite(records)

		if !isSorted(records) {
			t.Fatalf("n=%d: records not sorted: %v", n, websites(records))
		}
	}
}
