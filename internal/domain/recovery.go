package domain

import (
	"regexp"
	"strings"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

// The recovery classifier works on raw lines and never needs a valid syntax
// tree: injected material is found by fragment matching alone, so it survives
// reformatting, partial edits and outright corruption by external tools.

// suspendCallPattern matches the suspend-call in call position at the start
// of a (trimmed) line, tolerating arbitrary whitespace between tokens. A
// bare mention of the identifier, a string literal or a comment reference
// does not match, which keeps legitimate code that merely talks about the
// identifier out of the removal set.
var suspendCallPattern = regexp.MustCompile(`^await\s+` + regexp.QuoteMeta(m.DelayIdentifier) + `\s*\(`)

// importLikePattern recognizes the statement shapes a support-module
// reference can take after reformatting.
var importLikePattern = regexp.MustCompile(`^(import\b|export\b)|require\s*\(`)

// ClassifyLine runs the three fragment tests, in order, against a trimmed
// line. The second return is false when no pattern matches.
func ClassifyLine(trimmedLine string) (m.RecoveryReason, bool) {
	if strings.Contains(trimmedLine, m.MarkerStamp) {
		return m.ReasonStamp, true
	}

	if suspendCallPattern.MatchString(trimmedLine) {
		return m.ReasonIdentifier, true
	}

	if strings.Contains(trimmedLine, m.SupportFileName) && importLikePattern.MatchString(trimmedLine) {
		return m.ReasonImport, true
	}

	return "", false
}

// classifyLines is the single pass shared by scan and recover, which is what
// keeps their counts in agreement for every input. A suspend-call line that
// opens more brackets than it closes starts a span: every following line is
// scheduled for removal until the cumulative {} and () depth falls back to
// zero, which removes calls an external formatter spread over several lines.
func classifyLines(sourceText string) []m.RecoveryMatch {
	lines := strings.Split(sourceText, "\n")

	var matches []m.RecoveryMatch

	spanDepth := 0
	inSpan := false

	for i, line := range lines {
		if inSpan {
			matches = append(matches, m.RecoveryMatch{
				LineNumber:  i + 1,
				LineContent: line,
				Reason:      m.ReasonIdentifier,
			})

			spanDepth += netBracketDepth(line)
			if spanDepth <= 0 {
				inSpan = false
			}

			continue
		}

		reason, ok := ClassifyLine(strings.TrimSpace(line))
		if !ok {
			continue
		}

		matches = append(matches, m.RecoveryMatch{
			LineNumber:  i + 1,
			LineContent: line,
			Reason:      reason,
		})

		if reason == m.ReasonIdentifier {
			if depth := netBracketDepth(line); depth > 0 {
				inSpan = true
				spanDepth = depth
			}
		}
	}

	return matches
}

// netBracketDepth counts opens minus closes for both bracket styles, since
// either may carry a multi-line span depending on formatting style.
func netBracketDepth(line string) int {
	depth := 0

	for _, c := range line {
		switch c {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		}
	}

	return depth
}

// ScanForRecovery produces a read-only preview of every line recovery would
// delete, with 1-based line numbers.
func ScanForRecovery(sourceText string) []m.RecoveryMatch {
	return classifyLines(sourceText)
}

// RecoverDelays deletes every classified line and returns the filtered text.
// It never fails; lines matching no pattern are left untouched, and a line
// that survives because no fragment matched is a silent residual detectable
// only by re-scanning.
func RecoverDelays(sourceText string) m.RemovalResult {
	matches := classifyLines(sourceText)
	if len(matches) == 0 {
		return m.RemovalResult{SourceText: sourceText}
	}

	remove := make(map[int]struct{}, len(matches))
	for _, match := range matches {
		remove[match.LineNumber] = struct{}{}
	}

	lines := strings.Split(sourceText, "\n")
	kept := make([]string, 0, len(lines))

	for i, line := range lines {
		if _, drop := remove[i+1]; drop {
			continue
		}

		kept = append(kept, line)
	}

	return m.RemovalResult{
		SourceText:   strings.Join(kept, "\n"),
		RemovedCount: len(matches),
	}
}
