package correlate

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	brDateRe  = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})$`)
)

// NormalizeDate rewrites a date string to YYYY-MM-DD. Already-ISO strings
// pass through; D/M/YYYY shapes (also . and - separators, 1-2 digit day and
// month) are rewritten with zero padding. Anything else is returned
// unchanged: normalization is best-effort, callers tolerate non-ISO
// leftovers.
func NormalizeDate(s string) string {
	if s == "" || isoDateRe.MatchString(s) {
		return s
	}

	m := brDateRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
}
