package scan

import "strings"

// IgnoreSet is the fixed list of directory names excluded from tool-native
// scans. It is handed to tools through their own exclude flags; discovery
// itself never prunes.
type IgnoreSet []string

// CommaList renders the set the way most tool exclude flags want it.
func (s IgnoreSet) CommaList() string {
	return strings.Join(s, ",")
}

// Contains reports whether name is an ignored directory name.
func (s IgnoreSet) Contains(name string) bool {
	for _, d := range s {
		if d == name {
			return true
		}
	}
	return false
}
