package store

// sortByWebsite orders records ascending by website in place using heap sort.
// It is not stable; equal websites end up in no particular order.
func sortByWebsite(records []Record) {
	n := len(records)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(records, i, n)
	}
	for end := n - 1; end > 0; end-- {
		records[0], records[end] = records[end], records[0]
		siftDown(records, 0, end)
	}
}

// siftDown restores the max-heap property for the subtree rooted at i,
// considering only records[:n].
func siftDown(records []Record, i, n int) {
	for {
		largest := i
		left := 2*i + 1
		right := left + 1

		if left < n && records[left].Website > records[largest].Website {
			largest = left
		}
		if right < n && records[right].Website > records[largest].Website {
			largest = right
		}
		if largest == i {
			return
		}
		records[i], records[largest] = records[largest], records[i]
		i = largest
	}
}

// isSorted reports whether records are ascending by website
func isSorted(records []Record) bool {
	for i := 1; i < len(records); i++ {
		if records[i].Website < records[i-1].Website {
			return false
		}
	}
	return true
}
