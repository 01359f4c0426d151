package task

import (
	"regexp"
	"strings"
	"time"
)

// Clock supplies the calendar date used for completion stamping. Injected so
// tests stay deterministic.
type Clock func() time.Time

// SetCompletion tracks completion date in the task text with an inline
// annotation of the form "[key:: YYYY-MM-DD]". Marking complete stamps the
// current calendar date on the last line of the (possibly multi-line) text;
// earlier lines are never touched. Marking incomplete removes the annotation
// everywhere and trims trailing blank lines.
func SetCompletion(text, completionKey string, complete bool, now Clock) string {
	fieldRe := regexp.MustCompile(`\s*\[` + regexp.QuoteMeta(completionKey) + `::[^\]]*\]`)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = fieldRe.ReplaceAllString(l, "")
	}

	if !complete {
		end := len(lines)
		for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
			end--
		}
		return strings.Join(lines[:end], "\n")
	}

	if now == nil {
		now = time.Now
	}
	stamp := "[" + completionKey + ":: " + now().Format("2006-01-02") + "]"
	last := len(lines) - 1
	lines[last] = strings.TrimRight(lines[last], " ") + " " + stamp
	return strings.Join(lines, "\n")
}
