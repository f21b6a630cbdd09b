package rules

import (
	"strconv"
	"strings"
)

// Expand substitutes capture-group placeholders into a template. %N inserts
// group N, %UN inserts group N upper-cased. groups follows the regexp
// submatch convention: index 0 is the whole match. Placeholders referencing
// missing groups expand to the empty string; a literal % with no digit is
// kept as-is.
func Expand(template string, groups []string) string {
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		if template[i] != '%' || i+1 >= len(template) {
			b.WriteByte(template[i])
			continue
		}
		j := i + 1
		upper := false
		if template[j] == 'U' && j+1 < len(template) {
			upper = true
			j++
		}
		start := j
		for j < len(template) && template[j] >= '0' && template[j] <= '9' {
			j++
		}
		if j == start {
			b.WriteByte('%')
			continue
		}
		n, _ := strconv.Atoi(template[start:j])
		if n < len(groups) {
			g := groups[n]
			if upper {
				g = strings.ToUpper(g)
			}
			b.WriteString(g)
		}
		i = j - 1
	}
	return b.String()
}
