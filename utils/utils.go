package utils

import (
	// Go Internal Packages
	"strconv"
	"strings"
)

// JoinUint64Slice joins ids with commas. When limit > 0 and there are more ids
// than limit, only the first limit are joined followed by a count of the rest.
func JoinUint64Slice(ids []uint64, limit int) string {
	shown := ids
	if limit > 0 && len(ids) > limit {
		shown = ids[:limit]
	}

	strs := make([]string, len(shown))
	for i, v := range shown {
		strs[i] = strconv.FormatUint(v, 10)
	}
	out := strings.Join(strs, ",")
	if rest := len(ids) - len(shown); rest > 0 {
		out += ",... (" + strconv.Itoa(rest) + " more)"
	}
	return out
}
