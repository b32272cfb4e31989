package parser

import (
	"regexp"
	"strings"
)

// ParsedLabel is a task label split into its text and tags
type ParsedLabel struct {
	Task string
	Tags []string
}

var (
	tagRegex        = regexp.MustCompile(`#([a-zA-Z0-9_,-]+)`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// ParseLabel extracts #tags from a free-text task label
// Syntax: "Write report #work,writing #q3"
func ParseLabel(input string) ParsedLabel {
	result := ParsedLabel{}
	seen := map[string]bool{}

	for _, match := range tagRegex.FindAllStringSubmatch(input, -1) {
		// Split by comma in case of #tag1,tag2
		for _, tag := range strings.Split(match[1], ",") {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			result.Tags = append(result.Tags, tag)
		}
	}

	task := tagRegex.ReplaceAllString(input, "")
	result.Task = strings.TrimSpace(whitespaceRegex.ReplaceAllString(task, " "))

	// A label made only of tags keeps its text
	if result.Task == "" {
		result.Task = strings.TrimSpace(input)
	}

	return result
}
