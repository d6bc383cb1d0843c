package domain

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

// pointID derives the short per-point identifier embedded in the marker
// comment. It hashes the seed context so the id is stable across runs.
func pointID(context string) string {
	sum := sha256.Sum256([]byte(context))

	return fmt.Sprintf("%x", sum[:4])
}

// markerComment renders the marker line placed above each suspend-call.
func markerComment(id string, seed int32, mode m.Mode) string {
	return fmt.Sprintf("/* %s id=%s seed=%d mode=%s */", m.MarkerStamp, id, seed, mode)
}

// suspendCall renders the suspend-call line with the delay baked in as a
// literal, so editing the file later never changes historic behavior.
func suspendCall(delayMillis int) string {
	return fmt.Sprintf("await %s(%d);", m.DelayIdentifier, delayMillis)
}

// computeInsertions walks the located containers and produces the pending
// edits plus their injection point records. Offsets refer to the original
// source; nothing is applied here.
func computeInsertions(src []byte, shape *m.SourceShape, opts m.InjectOptions) ([]m.InsertionDescriptor, []m.InjectionPoint) {
	var insertions []m.InsertionDescriptor

	var points []m.InjectionPoint

	for _, container := range shape.Containers {
		if container.Generator && opts.SkipGenerators {
			continue
		}

		for idx, stmt := range container.Statements {
			if !ShouldInject(opts.Mode, stmt.Kind, idx) {
				continue
			}

			indent, atLineStart := sniffIndent(src, stmt.Offset)
			context := SeedContext(opts.FilePath, container.Name, idx)
			delayMillis := DelayMillis(opts.Seed, context, opts.Delay)
			id := pointID(context)

			text := markerComment(id, opts.Seed, opts.Mode) + "\n" +
				indent + suspendCall(delayMillis) + "\n" +
				indent
			if !atLineStart {
				// A statement sharing its line with other code gets pushed
				// onto a fresh line first; otherwise the marker would land on
				// the neighbor's line and recovery would delete both.
				text = "\n" + indent + text
			}

			insertions = append(insertions, m.InsertionDescriptor{
				ByteOffset: stmt.Offset,
				Text:       text,
			})
			points = append(points, m.InjectionPoint{
				ID:                   id,
				ContainerName:        container.Name,
				IndexWithinContainer: idx,
				SourceLine:           stmt.Line,
				SourceColumn:         stmt.Column,
				DelayMilliseconds:    delayMillis,
			})
		}
	}

	return insertions, points
}

// supportReferenceInsertion builds the one insertion that makes the file
// reference the support module: immediately after the last leading import, or
// at file start (past a #! line) when there are none. The second return is
// false when the source already references the module.
func supportReferenceInsertion(src []byte, shape *m.SourceShape, opts m.InjectOptions) (m.InsertionDescriptor, bool) {
	if strings.Contains(string(src), m.SupportFileName) {
		return m.InsertionDescriptor{}, false
	}

	line := supportReferenceLine(shape.HasESMSyntax, opts.SupportImportPath)

	offset := 0
	if shape.LeadingImportEnd > 0 {
		offset = advanceToNextLine(src, shape.LeadingImportEnd)
	} else if shape.HashBangEnd > 0 {
		offset = advanceToNextLine(src, shape.HashBangEnd)
	}

	return m.InsertionDescriptor{ByteOffset: offset, Text: line + "\n"}, true
}

// advanceToNextLine moves past the rest of the line the anchor ends on.
func advanceToNextLine(src []byte, offset int) int {
	for offset < len(src) && src[offset] != '\n' {
		offset++
	}

	if offset < len(src) {
		offset++
	}

	return offset
}

// supportReferenceLine picks the import style matching the file's own module
// syntax. The support module itself is CommonJS, which both styles resolve.
func supportReferenceLine(esm bool, importPath string) string {
	if importPath == "" {
		importPath = "./" + m.SupportFileName
	}

	if esm {
		return fmt.Sprintf("import { %s } from '%s'; /* %s */", m.DelayIdentifier, importPath, m.MarkerStamp)
	}

	return fmt.Sprintf("const { %s } = require('%s'); /* %s */", m.DelayIdentifier, importPath, m.MarkerStamp)
}

// sniffIndent copies the whitespace run immediately preceding offset, so the
// inserted lines are indented exactly like the statement they precede. The
// second return reports whether the statement is the first thing on its line.
func sniffIndent(src []byte, offset int) (string, bool) {
	start := offset
	for start > 0 {
		c := src[start-1]
		if c != ' ' && c != '\t' {
			break
		}

		start--
	}

	atLineStart := start == 0 || src[start-1] == '\n'

	return string(src[start:offset]), atLineStart
}

// applyInsertions splices all pending edits into src in a single pass,
// applied in descending offset order so earlier offsets stay valid without a
// re-parse or coordinate remapping. The sort is stable so that equal offsets
// keep their append order; since the support reference is appended after the
// statement insertions, a tie at file start always puts the reference line
// above the first marker block.
func applyInsertions(src []byte, insertions []m.InsertionDescriptor) []byte {
	sorted := make([]m.InsertionDescriptor, len(insertions))
	copy(sorted, insertions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ByteOffset > sorted[j].ByteOffset
	})

	out := make([]byte, len(src))
	copy(out, src)

	for _, ins := range sorted {
		offset := ins.ByteOffset
		if offset < 0 {
			offset = 0
		}

		if offset > len(out) {
			offset = len(out)
		}

		var spliced []byte
		spliced = append(spliced, out[:offset]...)
		spliced = append(spliced, ins.Text...)
		spliced = append(spliced, out[offset:]...)
		out = spliced
	}

	return out
}
