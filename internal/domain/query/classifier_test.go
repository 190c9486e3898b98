package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askforge/doubtbot/internal/domain/query"
)

var mentors = []query.UserRef{
	{ID: "mA", Name: "mentorA"},
	{ID: "mB", Name: "mentorB"},
}

func TestClassify_WellFormedDoubt(t *testing.T) {
	c := query.NewClassifier(query.PolicyAnywhere)

	parsed, err := c.Classify("doubt <@mA> <@mB> please help with build failure", mentors)
	require.NoError(t, err)
	require.Equal(t, "please help with build failure", parsed.Description)
	require.Equal(t, mentors, parsed.Mentions)
}

func TestClassify_KeywordAnywhere(t *testing.T) {
	c := query.NewClassifier(query.PolicyAnywhere)

	parsed, err := c.Classify("hey folks, I have a DOUBT <@mA> about goroutine leaks", mentors[:1])
	require.NoError(t, err)
	require.Equal(t, "about goroutine leaks", parsed.Description)
}

func TestClassify_PrefixPolicy(t *testing.T) {
	c := query.NewClassifier(query.PolicyPrefix)

	_, err := c.Classify("I have a doubt <@mA> about goroutine leaks", mentors[:1])
	require.ErrorIs(t, err, query.ErrNotADoubt)

	parsed, err := c.Classify("Doubt <@mA> about goroutine leaks", mentors[:1])
	require.NoError(t, err)
	require.Equal(t, "about goroutine leaks", parsed.Description)
}

func TestClassify_NoKeyword(t *testing.T) {
	c := query.NewClassifier(query.PolicyAnywhere)

	_, err := c.Classify("can someone review my PR <@mA>", mentors[:1])
	require.ErrorIs(t, err, query.ErrNotADoubt)
}

func TestClassify_NoMentorTagged(t *testing.T) {
	c := query.NewClassifier(query.PolicyAnywhere)

	_, err := c.Classify("doubt please help with build failure", nil)
	require.ErrorIs(t, err, query.ErrNoMentorTagged)
}

func TestClassify_DescriptionTooShort(t *testing.T) {
	c := query.NewClassifier(query.PolicyAnywhere)

	_, err := c.Classify("doubt <@mA> ok", mentors[:1])
	require.ErrorIs(t, err, query.ErrDescriptionTooShort)
}

func TestClassify_MinLengthBoundary(t *testing.T) {
	c := query.NewClassifier(query.PolicyAnywhere)

	parsed, err := c.Classify("doubt <@mA> abcde", mentors[:1])
	require.NoError(t, err)
	require.Equal(t, "abcde", parsed.Description)

	_, err = c.Classify("doubt <@mA> abcd", mentors[:1])
	require.ErrorIs(t, err, query.ErrDescriptionTooShort)
}

func TestClassify_StripsAllMentionForms(t *testing.T) {
	c := query.NewClassifier(query.PolicyAnywhere)

	parsed, err := c.Classify("doubt <@mA> <@!mA> <@&mB> where does config live", mentors)
	require.NoError(t, err)
	require.Equal(t, "where does config live", parsed.Description)
}

func TestClassify_NormalizesWhitespace(t *testing.T) {
	c := query.NewClassifier(query.PolicyAnywhere)

	parsed, err := c.Classify("doubt <@mA>   how   do I   rebase  ", mentors[:1])
	require.NoError(t, err)
	require.Equal(t, "how do I rebase", parsed.Description)
}

func TestParseDetectionPolicy(t *testing.T) {
	policy, err := query.ParseDetectionPolicy("")
	require.NoError(t, err)
	require.Equal(t, query.PolicyAnywhere, policy)

	policy, err = query.ParseDetectionPolicy("prefix")
	require.NoError(t, err)
	require.Equal(t, query.PolicyPrefix, policy)

	_, err = query.ParseDetectionPolicy("fuzzy")
	require.Error(t, err)
}
