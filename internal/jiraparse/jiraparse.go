// Package jiraparse parses and normalizes Jira issue keys per the
// project's configured parser mode, and loads that mode from jira.toml.
package jiraparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Mode selects how permissively a candidate token is recognized as a
// Jira issue key.
type Mode int

const (
	// ModeStrict accepts only the canonical ^[A-Z]{2,}-\d+$ form.
	ModeStrict Mode = iota
	// ModeFlexible additionally accepts lowercase and a missing hyphen,
	// normalizing both (e.g. "me1234" -> "ME-1234").
	ModeFlexible
)

var strictPattern = regexp.MustCompile(`^[A-Z]{2,}-[0-9]+$`)
var flexiblePattern = regexp.MustCompile(`^([A-Za-z]{2,})-?([0-9]+)$`)

// ParseKey reports whether token is a Jira issue key under mode, and if
// so returns it in canonical form. Strict mode returns the token unchanged;
// flexible mode uppercases the project key, uses a single hyphen, and drops
// leading zeros from the number ("proj-007" -> "PROJ-7").
func ParseKey(token string, mode Mode) (string, bool) {
	switch mode {
	case ModeStrict:
		if strictPattern.MatchString(token) {
			return token, true
		}
		return "", false
	default:
		m := flexiblePattern.FindStringSubmatch(token)
		if m == nil {
			return "", false
		}
		project := strings.ToUpper(m[1])
		number, err := strconv.Atoi(m[2])
		if err != nil {
			return "", false
		}
		return project + "-" + strconv.Itoa(number), true
	}
}

var browsePathPattern = regexp.MustCompile(`/browse/([A-Za-z0-9]+-?[0-9]+)`)

// ParseIssueURL extracts and normalizes the issue key from a Jira
// "/browse/<key>" URL, if present.
func ParseIssueURL(url string, mode Mode) (string, bool) {
	m := browsePathPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return ParseKey(m[1], mode)
}
