package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-cli/internal/model"
)

func TestRankConfidenceOrder(t *testing.T) {
	cands := []model.Candidate{
		{Email: "low@x.com", Confidence: model.ConfidenceLow},
		{Email: "med@x.com", Confidence: model.ConfidenceMedium},
		{Email: "high@x.com", Confidence: model.ConfidenceHigh},
	}

	ranked := Rank(cands)
	require.Len(t, ranked, 3)
	assert.Equal(t, "high@x.com", ranked[0].Email)
	assert.Equal(t, "med@x.com", ranked[1].Email)
	assert.Equal(t, "low@x.com", ranked[2].Email)

	// Input order untouched.
	assert.Equal(t, "low@x.com", cands[0].Email)
}

func TestRankStableWithinGrade(t *testing.T) {
	cands := []model.Candidate{
		{Email: "first@x.com", Confidence: model.ConfidenceMedium},
		{Email: "second@x.com", Confidence: model.ConfidenceMedium},
		{Email: "best@x.com", Confidence: model.ConfidenceHigh},
		{Email: "third@x.com", Confidence: model.ConfidenceMedium},
	}

	ranked := Rank(cands)
	assert.Equal(t, "best@x.com", ranked[0].Email)
	assert.Equal(t, "first@x.com", ranked[1].Email)
	assert.Equal(t, "second@x.com", ranked[2].Email)
	assert.Equal(t, "third@x.com", ranked[3].Email)
}

func TestTop(t *testing.T) {
	cands := []model.Candidate{
		{Email: "a@x.com", Confidence: model.ConfidenceLow},
		{Email: "b@x.com", Confidence: model.ConfidenceHigh},
		{Email: "c@x.com", Confidence: model.ConfidenceMedium},
		{Email: "d@x.com", Confidence: model.ConfidenceLow},
	}

	top := Top(cands, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "b@x.com", top[0].Email)
	assert.Equal(t, "c@x.com", top[1].Email)
	assert.Equal(t, "a@x.com", top[2].Email)
}

func TestTopFewerThanN(t *testing.T) {
	cands := []model.Candidate{{Email: "a@x.com", Confidence: model.ConfidenceHigh}}
	assert.Len(t, Top(cands, 3), 1)
	assert.Empty(t, Top(nil, 3))
}
