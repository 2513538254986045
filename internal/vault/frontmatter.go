package vault

import "regexp"

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)$`)

// SplitFrontmatter separates a note into its frontmatter block and body.
// Notes without a leading frontmatter block report ok=false with the whole
// content returned as body.
func SplitFrontmatter(content string) (frontmatter, body string, ok bool) {
	match := frontmatterPattern.FindStringSubmatch(content)
	if match == nil {
		return "", content, false
	}
	return match[1], match[2], true
}

// JoinFrontmatter reassembles a note from a frontmatter block and body.
func JoinFrontmatter(frontmatter, body string) string {
	return "---\n" + frontmatter + "\n---\n" + body
}
