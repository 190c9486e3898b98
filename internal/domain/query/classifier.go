package query

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Keyword triggers doubt detection, matched case-insensitively.
const Keyword = "doubt"

// DefaultMinDescriptionLen is the minimum cleaned description length.
const DefaultMinDescriptionLen = 5

// DetectionPolicy selects how the trigger keyword is matched.
type DetectionPolicy string

const (
	// PolicyAnywhere accepts the keyword anywhere in the message.
	PolicyAnywhere DetectionPolicy = "anywhere"
	// PolicyPrefix requires the message to start with the keyword.
	PolicyPrefix DetectionPolicy = "prefix"
)

// ParseDetectionPolicy validates a policy name from configuration.
func ParseDetectionPolicy(s string) (DetectionPolicy, error) {
	switch DetectionPolicy(s) {
	case PolicyAnywhere, PolicyPrefix:
		return DetectionPolicy(s), nil
	case "":
		return PolicyAnywhere, nil
	}
	return "", fmt.Errorf("unknown detection policy %q", s)
}

// Parsed is the outcome of classifying a well-formed doubt message.
type Parsed struct {
	Description string
	Mentions    []UserRef
}

// Classifier decides whether a raw message is a well-formed doubt and
// extracts a clean description. It is a pure function of its inputs;
// mention resolution happens upstream in the chat client.
type Classifier struct {
	Policy            DetectionPolicy
	MinDescriptionLen int
}

// NewClassifier creates a classifier with the given policy and the
// default minimum description length.
func NewClassifier(policy DetectionPolicy) Classifier {
	return Classifier{Policy: policy, MinDescriptionLen: DefaultMinDescriptionLen}
}

// Classify returns the parsed doubt, or ErrNotADoubt when the keyword is
// absent, ErrNoMentorTagged when no mentors are tagged, or
// ErrDescriptionTooShort when stripping mentions and the keyword leaves
// too little text.
func (c Classifier) Classify(content string, mentions []UserRef) (*Parsed, error) {
	lower := strings.ToLower(content)

	var rest string
	switch c.Policy {
	case PolicyPrefix:
		if !strings.HasPrefix(lower, Keyword) {
			return nil, ErrNotADoubt
		}
		rest = content[len(Keyword):]
	default:
		idx := strings.Index(lower, Keyword)
		if idx < 0 {
			return nil, ErrNotADoubt
		}
		rest = content[idx+len(Keyword):]
	}

	if len(mentions) == 0 {
		return nil, ErrNoMentorTagged
	}

	desc := stripMentions(rest, mentions)
	minLen := c.MinDescriptionLen
	if minLen == 0 {
		minLen = DefaultMinDescriptionLen
	}
	if utf8.RuneCountInString(desc) < minLen {
		return nil, ErrDescriptionTooShort
	}

	return &Parsed{Description: desc, Mentions: mentions}, nil
}

// stripMentions removes every mention token for the given users. The
// chat client renders mentions as <@id>, <@!id> or <@&id>.
func stripMentions(text string, mentions []UserRef) string {
	for _, m := range mentions {
		for _, token := range []string{"<@" + m.ID + ">", "<@!" + m.ID + ">", "<@&" + m.ID + ">"} {
			text = strings.ReplaceAll(text, token, "")
		}
	}
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}
