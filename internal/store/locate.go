package store

// locate finds the index of the record whose website equals key.
//
// records must already be sorted by website. locate does not check this in
// release builds and returns wrong answers on unsorted input; building with
// the keeppassdebug tag turns a violation into a panic.
func locate(records []Record, key string) (int, bool) {
	if checkSorted && !isSorted(records) {
		panic("store: locate called on unsorted records")
	}

	low, high := 0, len(records)-1
	for low <= high {
		mid := low + (high-low)/2
		switch w := records[mid].Website; {
		case w == key:
			return mid, true
		case w < key:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return -1, false
}
