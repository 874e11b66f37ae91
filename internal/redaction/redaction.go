// Package redaction strips secrets from bookmark comments and flags
// secret-looking command text before it is written to a group file.
package redaction

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// IgnoreFile is the per-home file of extra patterns, one regular expression per line.
const IgnoreFile = ".sebasignore"

type pattern struct {
	name string
	re   *regexp.Regexp
}

// sensitivePatterns are compiled once at package init and applied in layer 2.
var sensitivePatterns = []pattern{
	{"stripe live key", regexp.MustCompile(`(?i)sk_live_[a-zA-Z0-9]+`)},
	{"stripe test key", regexp.MustCompile(`(?i)sk_test_[a-zA-Z0-9]+`)},
	{"github token", regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]+`)},
	{"aws access key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"slack token", regexp.MustCompile(`xox[bp]-[a-zA-Z0-9-]+`)},
	{"private key", regexp.MustCompile(`-----BEGIN (?:RSA )?PRIVATE KEY-----`)},
	{"jwt", regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+`)},
	{"bearer token", regexp.MustCompile(`(?i)bearer\s+[a-z0-9._~+/-]{16,}=*`)},
	{"password flag", regexp.MustCompile(`(?i)--password[= ]\S+`)},
	{"password", regexp.MustCompile(`(?i)password\s*[:=]\s*["']?.+`)},
	{"secret", regexp.MustCompile(`(?i)secret\s*[:=]\s*["']?.+`)},
	{"api key", regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*["']?.+`)},
}

// redactedTagRe matches explicit <redacted>…</redacted> pairs (including multiline).
var redactedTagRe = regexp.MustCompile(`(?s)<redacted>.*?</redacted>`)

const replacement = "[REDACTED]"

// Redact applies a three-layer pipeline to text:
//
//  1. Explicit <redacted>…</redacted> tags, replaced with [REDACTED] until
//     no pairs remain; orphaned opening/closing tags are then stripped.
//  2. Built-in sensitive patterns (API keys, tokens, passwords).
//  3. Caller-supplied extraPatterns (e.g. from LoadIgnore).
func Redact(text string, extraPatterns []*regexp.Regexp) string {
	// Layer 1: explicit tags, looped until stable.
	for {
		next := redactedTagRe.ReplaceAllString(text, replacement)
		if next == text {
			break
		}
		text = next
	}
	text = strings.ReplaceAll(text, "<redacted>", "")
	text = strings.ReplaceAll(text, "</redacted>", "")

	// Layer 2: built-in patterns.
	for _, p := range sensitivePatterns {
		text = p.re.ReplaceAllString(text, replacement)
	}

	// Layer 3: caller-supplied patterns.
	for _, re := range extraPatterns {
		text = re.ReplaceAllString(text, replacement)
	}

	return text
}

// Findings names every built-in pattern that matches text, in pattern order,
// followed by "custom pattern" if any extra pattern matches. Command text is
// never rewritten since it must stay runnable; callers warn instead.
func Findings(text string, extraPatterns []*regexp.Regexp) []string {
	var found []string
	for _, p := range sensitivePatterns {
		if p.re.MatchString(text) {
			found = append(found, p.name)
		}
	}
	for _, re := range extraPatterns {
		if re.MatchString(text) {
			found = append(found, "custom pattern")
			break
		}
	}
	return found
}

// LoadIgnore reads an ignore file and compiles each non-blank,
// non-comment line as a regular expression.
// Returns nil (no error) if the file does not exist.
func LoadIgnore(path string) ([]*regexp.Regexp, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []*regexp.Regexp
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		re, err := regexp.Compile(line)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return patterns, scanner.Err()
}
