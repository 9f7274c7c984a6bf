package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-cli/internal/model"
)

func TestPatternFixedOrder(t *testing.T) {
	p := NewPattern()
	out := p.Resolve(context.Background(), model.Contact{Name: "John Doe", Company: "Acme"})

	require.Equal(t, StatusFound, out.Status)
	want := []string{
		"john.doe@acme.com",
		"johndoe@acme.com",
		"jdoe@acme.com",
		"john_doe@acme.com",
		"john@acme.com",
		"doe.john@acme.com",
		"j.doe@acme.com",
		"johnd@acme.com",
	}
	require.Len(t, out.Candidates, len(want))
	for i, c := range out.Candidates {
		assert.Equal(t, want[i], c.Email)
		assert.Equal(t, model.ConfidenceLow, c.Confidence)
		assert.Equal(t, model.SourcePattern, c.Source)
		assert.False(t, c.Verified)
	}
}

func TestPatternSingleTokenName(t *testing.T) {
	p := NewPattern()
	out := p.Resolve(context.Background(), model.Contact{Name: "Madonna", Company: "Acme"})
	assert.Equal(t, StatusEmpty, out.Status)
	assert.Empty(t, out.Candidates)
}

func TestPatternMiddleNamesIgnored(t *testing.T) {
	p := NewPattern()
	out := p.Resolve(context.Background(), model.Contact{Name: "John Quincy Doe", Company: "Acme"})
	require.Equal(t, StatusFound, out.Status)
	assert.Equal(t, "john.doe@acme.com", out.Candidates[0].Email)
}

func TestPatternFoldsDiacritics(t *testing.T) {
	p := NewPattern()
	out := p.Resolve(context.Background(), model.Contact{Name: "José Núñez", Company: "Acme"})
	require.Equal(t, StatusFound, out.Status)
	assert.Equal(t, "jose.nunez@acme.com", out.Candidates[0].Email)
	assert.Equal(t, "jnunez@acme.com", out.Candidates[2].Email)
}

func TestPatternUsesDomainResolver(t *testing.T) {
	p := NewPattern()
	out := p.Resolve(context.Background(), model.Contact{Name: "Jane Unknown", Company: "TinyStartup Inc"})
	require.Equal(t, StatusFound, out.Status)
	assert.Equal(t, "jane.unknown@tinystartupinc.com", out.Candidates[0].Email)
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, "jose nunez", foldName("José Núñez"))
	assert.Equal(t, "john doe", foldName("John Doe"))
}

func TestSplitName(t *testing.T) {
	first, last, ok := splitName("john quincy doe")
	require.True(t, ok)
	assert.Equal(t, "john", first)
	assert.Equal(t, "doe", last)

	_, _, ok = splitName("madonna")
	assert.False(t, ok)

	_, _, ok = splitName("")
	assert.False(t, ok)
}
