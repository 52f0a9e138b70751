package ids

import "strings"

// MinShortLength is the shortest display form an ID is ever shortened to.
const MinShortLength = 4

// ShortIDs maps each ID to its shortest unambiguous display form, never
// shorter than MinShortLength. Comparison is case-insensitive.
func ShortIDs(ids []string) map[string]string {
	lowered := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		low := strings.ToLower(id)
		if low == "" || seen[low] {
			continue
		}
		seen[low] = true
		lowered = append(lowered, low)
	}

	short := make(map[string]string, len(ids))
	for _, id := range ids {
		low := strings.ToLower(id)
		if low == "" {
			continue
		}
		n := uniquePrefixLength(low, lowered)
		if n < MinShortLength {
			n = MinShortLength
		}
		if n > len(id) {
			n = len(id)
		}
		short[id] = id[:n]
	}
	return short
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
