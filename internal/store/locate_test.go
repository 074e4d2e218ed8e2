package store

import (
	"fmt"
	"testing"
)

func TestLocate(t *testing.T) {
	records := []Record{
		{Website: "alpha.com"},
		{Website: "bank.com"},
		{Website: "mail.com"},
		{Website: "shop.com"},
		{Website: "zeta.com"},
	}

	for i, r := range records {
		got, ok := locate(records, r.Website)
		if !ok || got != i {
			t.Errorf("locate(%q) = (%d, %v), want (%d, true)", r.Website, got, ok, i)
		}
	}

	for _, key := range []string{"", "aaa.com", "bank.co", "nowhere.com", "zzz.com"} {
		if got, ok := locate(records, key); ok || got != -1 {
			t.Errorf("locate(%q) = (%d, %v), want (-1, false)", key, got, ok)
		}
	}
}

func TestLocate_Empty(t *testing.T) {
	if got, ok := locate(nil, "site.com"); ok || got != -1 {
		t.Errorf("locate on empty = (%d, %v), want (-1, false)", got, ok)
	}
}

func TestLocate_AllSizes(t *testing.T) {
	for n := 0; n < 40; n++ {
		records := make([]Record, n)
		for i := range records {
			// Even numbers only, so odd keys are guaranteed misses
			records[i] = Record{Website: fmt.Sprintf("%04d", 2*i)}
		}
		for k := -1; k <= 2*n; k++ {
			key := fmt.Sprintf("%04d", k)
			i, ok := locate(records, key)
			wantFound := k >= 0 && k%2 == 0 && k < 2*n
			if ok != wantFound {
				t.Fatalf("n=%d key=%s: found=%v, want %v", n, key, ok, wantFound)
			}
			if ok && records[i].Website != key {
				t.Fatalf("n=%d key=%s: index %d holds %s", n, key, i, records[i].Website)
			}
		}
	}
}
