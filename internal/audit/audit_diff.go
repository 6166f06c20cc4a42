package audit

import "sort"

// Diff lists the fields whose value differs between before and after,
// ordered by field name. A nil snapshot behaves as empty.
func Diff(before, after Snapshot) []FieldChange {
	fields := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		fields[k] = struct{}{}
	}
	for k := range after {
		fields[k] = struct{}{}
	}

	changes := make([]FieldChange, 0)
	for f := range fields {
		if before[f] != after[f] {
			changes = append(changes, FieldChange{Field: f, Old: before[f], New: after[f]})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}
