package elastic

import (
	"regexp"
	"strings"
)

// timestampSuffix matches the `_Y-m-d-His` suffix of physical indexes created
// behind an alias during reindexing.
var timestampSuffix = regexp.MustCompile(`_\d{4}-\d{2}-\d{2}-\d{6}$`)

// physicalName returns the name sent to the cluster for a logical index.
func (s *Store) physicalName(index string) string {
	return s.prefix + index
}

// LogicalName strips prefix and a trailing timestamp suffix from a physical
// index name.
func LogicalName(prefix, physical string) string {
	name := strings.TrimPrefix(physical, prefix)
	return timestampSuffix.ReplaceAllString(name, "")
}
