package skills

import (
	"regexp"
	"strings"
)

var (
	fencedBlockPattern = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern  = regexp.MustCompile("`[^`]*`")
	linkPattern        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	punctOnlyPattern   = regexp.MustCompile(`^[\p{P}\p{S}]+$`)
)

// CountWords counts prose words in a skill body. Fenced code blocks and
// inline code spans are stripped, markdown links collapse to their visible
// text, and tokens made entirely of punctuation are discarded.
func CountWords(body string) int {
	text := fencedBlockPattern.ReplaceAllString(body, " ")
	text = inlineCodePattern.ReplaceAllString(text, " ")
	text = linkPattern.ReplaceAllString(text, "$1")

	count := 0
	for _, token := range strings.Fields(text) {
		if punctOnlyPattern.MatchString(token) {
			continue
		}
		count++
	}
	return count
}

// CountLines counts lines in the raw file content, frontmatter included.
// A trailing newline does not add an empty final line.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		return len(lines) - 1
	}
	return len(lines)
}
