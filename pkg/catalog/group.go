package catalog

import (
	"cmp"
	"strconv"
	"strings"
)

var reDisplayName = compile(`^(\S+)\s+(.*)`)

// SplitDisplayName divides a group display name such as
// "LES05.1a - Jaseňovo-dubové lesy" into the habitat code and the habitat
// name. A display name without whitespace has no code, in that case
// the group id is used as the code and the whole display name as the name.
func SplitDisplayName(groupID, display string) (code, name string) {
	m := reDisplayName.FindStringSubmatch(display)
	if m == nil {
		return groupID, display
	}
	code = strings.TrimSpace(m[1])
	name = strings.TrimSpace(m[2])
	if rest, ok := strings.CutPrefix(name, "-"); ok {
		name = strings.TrimSpace(rest)
	}
	return code, name
}

// CompareGroupIDs orders group ids by their numeric suffix, so "Group2"
// comes before "Group10". Ids without a numeric suffix are compared as
// strings and go after numbered ones.
func CompareGroupIDs(a, b string) int {
	na, okA := groupNumber(a)
	nb, okB := groupNumber(b)
	switch {
	case okA && okB:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(a, b)
}

func groupNumber(id string) (int, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0, false
	}
	n, err := strconv.Atoi(id[i:])
	return n, err == nil
}
