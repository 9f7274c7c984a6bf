package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/pkg/apollo"
	"github.com/sells-group/contact-cli/pkg/clearbit"
)

var testContact = model.Contact{
	Name:        "Jane Doe",
	Company:     "Acme",
	LinkedInURL: "https://linkedin.com/in/janedoe",
}

func TestApolloAdapter(t *testing.T) {
	t.Run("found_is_high", func(t *testing.T) {
		fake := &fakeApollo{person: &apollo.Person{Email: "jane@acme.com"}}
		a := NewApollo(fake, testLimiter())
		out := a.Resolve(context.Background(), testContact)

		require.Equal(t, StatusFound, out.Status)
		require.Len(t, out.Candidates, 1)
		assert.Equal(t, model.ConfidenceHigh, out.Candidates[0].Confidence)
		assert.Equal(t, "jane@acme.com", out.Candidates[0].Email)

		// LinkedIn URL is forwarded when present.
		assert.Equal(t, testContact.LinkedInURL, fake.gotReq.LinkedInURL)
	})

	t.Run("no_credential", func(t *testing.T) {
		a := NewApollo(nil, testLimiter())
		out := a.Resolve(context.Background(), testContact)
		assert.Equal(t, StatusSkipped, out.Status)
	})

	t.Run("no_match", func(t *testing.T) {
		a := NewApollo(&fakeApollo{}, testLimiter())
		out := a.Resolve(context.Background(), testContact)
		assert.Equal(t, StatusEmpty, out.Status)
	})

	t.Run("rate_limited", func(t *testing.T) {
		a := NewApollo(&fakeApollo{err: apollo.ErrRateLimited}, testLimiter())
		out := a.Resolve(context.Background(), testContact)
		assert.Equal(t, StatusRateLimited, out.Status)
	})
}

func TestRocketReachAdapter(t *testing.T) {
	t.Run("multiple_emails_all_high", func(t *testing.T) {
		r := NewRocketReach(&fakeRocketReach{emails: []string{"a@acme.com", "b@acme.com"}}, testLimiter())
		out := r.Resolve(context.Background(), testContact)

		require.Equal(t, StatusFound, out.Status)
		require.Len(t, out.Candidates, 2)
		for _, c := range out.Candidates {
			assert.Equal(t, model.ConfidenceHigh, c.Confidence)
			assert.Equal(t, model.SourceRocketReach, c.Source)
		}
	})

	t.Run("no_credential", func(t *testing.T) {
		r := NewRocketReach(nil, testLimiter())
		out := r.Resolve(context.Background(), testContact)
		assert.Equal(t, StatusSkipped, out.Status)
	})

	t.Run("fault_contained", func(t *testing.T) {
		r := NewRocketReach(&fakeRocketReach{err: errBoom}, testLimiter())
		out := r.Resolve(context.Background(), testContact)
		assert.Equal(t, StatusFailed, out.Status)
	})
}

func TestClearbitAdapter(t *testing.T) {
	t.Run("found_uses_resolved_domain", func(t *testing.T) {
		fake := &fakeClearbit{person: &clearbit.Person{Email: "jane@acme.com"}}
		c := NewClearbit(fake, testLimiter())
		out := c.Resolve(context.Background(), testContact)

		require.Equal(t, StatusFound, out.Status)
		assert.Equal(t, "acme.com", fake.gotDomain)
		assert.Equal(t, model.ConfidenceHigh, out.Candidates[0].Confidence)
	})

	t.Run("rate_limited", func(t *testing.T) {
		c := NewClearbit(&fakeClearbit{err: clearbit.ErrRateLimited}, testLimiter())
		out := c.Resolve(context.Background(), testContact)
		assert.Equal(t, StatusRateLimited, out.Status)
	})
}
