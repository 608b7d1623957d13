// Package parser extracts the machine-readable metadata block the generation
// prompt asks models to append, separating it from the displayed answer.
// Parsing never fails: malformed model output degrades to empty metadata.
package parser

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// maxFollowUps caps the follow-up questions kept from the metadata block.
const maxFollowUps = 5

// Tradeoff is one option with its pros and cons as reported by the model.
type Tradeoff struct {
	Option string   `json:"option"`
	Pros   []string `json:"pros"`
	Cons   []string `json:"cons"`
}

// Metadata is the parsed structured tail of a model answer.
type Metadata struct {
	// CleanAnswer is the answer text with the metadata block removed.
	CleanAnswer string
	// FollowUpQuestions holds at most maxFollowUps suggested follow-ups.
	FollowUpQuestions []string
	// Tradeoffs holds the validated tradeoff entries.
	Tradeoffs []Tradeoff
	// SelfConfidence is the model's self-reported confidence in [0, 1],
	// nil when absent.
	SelfConfidence *float64
}

// metadataBlockRe matches the fenced, tagged JSON block at the very end of
// the answer.
var metadataBlockRe = regexp.MustCompile("(?s)```research-metadata\\s*\\n(.*?)```\\s*$")

// legacyConfidenceRe matches the older inline HTML-comment confidence marker.
var legacyConfidenceRe = regexp.MustCompile(`<!--\s*confidence:\s*([0-9]*\.?[0-9]+)\s*-->`)

// Parse extracts structured metadata from raw model output. The fenced
// block is tried first; if it is absent or undecodable the legacy inline
// confidence marker is tried; otherwise empty metadata is returned.
func Parse(raw string) Metadata {
	meta := Metadata{CleanAnswer: strings.TrimSpace(raw)}

	if m := metadataBlockRe.FindStringSubmatchIndex(raw); m != nil {
		blockJSON := raw[m[2]:m[3]]
		if parsed, ok := decodeBlock(blockJSON); ok {
			parsed.CleanAnswer = strings.TrimSpace(raw[:m[0]])
			return parsed
		}
	}

	if m := legacyConfidenceRe.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			clamped := clamp01(v)
			meta.SelfConfidence = &clamped
		}
		meta.CleanAnswer = strings.TrimSpace(legacyConfidenceRe.ReplaceAllString(raw, ""))
	}

	return meta
}

// rawBlock mirrors the expected JSON shape with loose types so each field
// can be coerced defensively.
type rawBlock struct {
	FollowUpQuestions []any `json:"follow_up_questions"`
	Tradeoffs         []any `json:"tradeoffs"`
	Confidence        any   `json:"confidence"`
}

func decodeBlock(blockJSON string) (Metadata, bool) {
	var raw rawBlock
	if err := json.Unmarshal([]byte(blockJSON), &raw); err != nil {
		return Metadata{}, false
	}

	var meta Metadata

	for _, q := range raw.FollowUpQuestions {
		s, ok := q.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		meta.FollowUpQuestions = append(meta.FollowUpQuestions, strings.TrimSpace(s))
		if len(meta.FollowUpQuestions) == maxFollowUps {
			break
		}
	}

	for _, entry := range raw.Tradeoffs {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		option, ok := obj["option"].(string)
		if !ok || strings.TrimSpace(option) == "" {
			continue
		}
		meta.Tradeoffs = append(meta.Tradeoffs, Tradeoff{
			Option: strings.TrimSpace(option),
			Pros:   stringSlice(obj["pros"]),
			Cons:   stringSlice(obj["cons"]),
		})
	}

	if num, ok := raw.Confidence.(float64); ok {
		clamped := clamp01(num)
		meta.SelfConfidence = &clamped
	}

	return meta, true
}

// stringSlice coerces a decoded JSON value into a string slice, dropping
// non-string elements.
func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
