package race

import "strings"

// UnknownCourseName is used when a calendar event's location cannot be
// matched against any known course.
const UnknownCourseName = "Unknown"

// CourseSimilarity scores how alike two course names are, from 0 to 1,
// by comparing their character trigram sets. Comparison ignores case and
// collapses runs of non-alphanumeric characters.
func CourseSimilarity(a, b string) float64 {
	ta, tb := trigrams(a), trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

func trigrams(s string) map[string]struct{} {
	s = normalizeCourseName(s)
	if s == "" {
		return nil
	}
	s = "  " + s + " "
	out := make(map[string]struct{}, len(s))
	for i := 0; i+3 <= len(s); i++ {
		out[s[i:i+3]] = struct{}{}
	}
	return out
}

func normalizeCourseName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
