// Package chunker splits raw document text into ordered passages for
// indexing. Three strategies are supported: a fixed sliding window, a
// heading-aware scan and a paragraph-packing semantic split.
package chunker

import (
	"regexp"
	"strings"
	"unicode"

	"research-ai/internal/textutil"
)

// Strategy selects how a document is split.
type Strategy string

const (
	StrategyFixed    Strategy = "fixed"
	StrategyHeading  Strategy = "heading"
	StrategySemantic Strategy = "semantic"
)

const (
	fixedWindowSize  = 900
	fixedOverlap     = 120
	maxBufferedChars = 1000

	// defaultHeading labels content that appears before the first heading.
	defaultHeading = "Document"
)

// Chunk is one ordered fragment of a document.
type Chunk struct {
	Index         int
	Heading       string
	Text          string
	StartOffset   int
	EndOffset     int
	TokenEstimate int
}

// ValidStrategy reports whether s names a known chunking strategy.
func ValidStrategy(s Strategy) bool {
	switch s {
	case StrategyFixed, StrategyHeading, StrategySemantic:
		return true
	}
	return false
}

// Split chunks text using the given strategy. Empty or whitespace-only input
// yields no chunks; no returned chunk is ever empty. Offsets are rune
// positions into the trimmed input.
func Split(text string, strategy Strategy) []Chunk {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var chunks []Chunk
	switch strategy {
	case StrategyHeading:
		chunks = splitHeadingAware(trimmed)
	case StrategySemantic:
		chunks = splitSemantic(trimmed)
	default:
		chunks = splitFixed(trimmed)
	}

	for i := range chunks {
		chunks[i].Index = i
		chunks[i].TokenEstimate = textutil.EstimateTokens(chunks[i].Text)
	}
	return chunks
}

// splitFixed emits sliding windows of fixedWindowSize runes with
// fixedOverlap runes of overlap so ideas spanning a boundary survive intact.
func splitFixed(text string) []Chunk {
	runes := []rune(text)
	var chunks []Chunk

	start := 0
	for start < len(runes) {
		end := start + fixedWindowSize
		if end > len(runes) {
			end = len(runes)
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			chunks = append(chunks, Chunk{
				Heading:     defaultHeading,
				Text:        piece,
				StartOffset: start,
				EndOffset:   end,
			})
		}

		if end == len(runes) {
			break
		}
		start = end - fixedOverlap
	}
	return chunks
}

var markdownHeadingRe = regexp.MustCompile(`^#{1,6}\s+(.+)$`)

// isHeadingLine recognizes markdown headings and short capitalized lines
// ending in a colon, e.g. "Tradeoffs:".
func isHeadingLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	if m := markdownHeadingRe.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if len(trimmed) <= 60 && strings.HasSuffix(trimmed, ":") {
		first := []rune(trimmed)[0]
		if unicode.IsUpper(first) {
			return strings.TrimSuffix(trimmed, ":"), true
		}
	}
	return "", false
}

// splitHeadingAware scans lines, starting a new chunk at every heading. A
// chunk is also force-flushed once its buffer exceeds maxBufferedChars so a
// heading-free document still produces bounded chunks.
func splitHeadingAware(text string) []Chunk {
	lines := strings.Split(text, "\n")

	var chunks []Chunk
	heading := defaultHeading
	var buf []string
	bufStart := 0
	bufLen := 0
	offset := 0

	flush := func(end int) {
		joined := strings.TrimSpace(strings.Join(buf, "\n"))
		if joined != "" {
			chunks = append(chunks, Chunk{
				Heading:     heading,
				Text:        joined,
				StartOffset: bufStart,
				EndOffset:   end,
			})
		}
		buf = buf[:0]
		bufLen = 0
	}

	for _, line := range lines {
		lineLen := len([]rune(line))
		if label, ok := isHeadingLine(line); ok {
			flush(offset)
			heading = label
			bufStart = offset + lineLen + 1
		} else {
			if len(buf) == 0 {
				bufStart = offset
			}
			buf = append(buf, line)
			bufLen += lineLen + 1
			if bufLen > maxBufferedChars {
				flush(offset + lineLen)
			}
		}
		offset += lineLen + 1
	}
	flush(len([]rune(text)))

	return chunks
}

// splitSemantic packs blank-line-delimited paragraphs greedily into buckets
// of at most maxBufferedChars. Input without paragraph boundaries falls back
// to the fixed window strategy.
func splitSemantic(text string) []Chunk {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) <= 1 {
		return splitFixed(text)
	}

	var chunks []Chunk
	var bucket []string
	bucketStart := 0
	bucketLen := 0

	flush := func(end int) {
		joined := strings.TrimSpace(strings.Join(bucket, "\n\n"))
		if joined != "" {
			chunks = append(chunks, Chunk{
				Heading:     defaultHeading,
				Text:        joined,
				StartOffset: bucketStart,
				EndOffset:   end,
			})
		}
		bucket = bucket[:0]
		bucketLen = 0
	}

	for _, p := range paragraphs {
		pLen := len([]rune(p.text))
		if len(bucket) > 0 && bucketLen+pLen > maxBufferedChars {
			flush(p.start)
		}
		if len(bucket) == 0 {
			bucketStart = p.start
		}
		bucket = append(bucket, p.text)
		bucketLen += pLen + 2
	}
	flush(len([]rune(text)))

	return chunks
}

type paragraph struct {
	text  string
	start int
}

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs splits on blank lines, tracking each paragraph's rune
// offset in the original text.
func splitParagraphs(text string) []paragraph {
	locs := blankLineRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []paragraph{{text: text, start: 0}}
	}

	var paras []paragraph
	prev := 0
	byteToRune := func(b int) int { return len([]rune(text[:b])) }
	for _, loc := range locs {
		piece := strings.TrimSpace(text[prev:loc[0]])
		if piece != "" {
			paras = append(paras, paragraph{text: piece, start: byteToRune(prev)})
		}
		prev = loc[1]
	}
	if piece := strings.TrimSpace(text[prev:]); piece != "" {
		paras = append(paras, paragraph{text: piece, start: byteToRune(prev)})
	}
	return paras
}
