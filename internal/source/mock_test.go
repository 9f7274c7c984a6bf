package source

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-cli/internal/ratelimit"
	"github.com/sells-group/contact-cli/pkg/apollo"
	"github.com/sells-group/contact-cli/pkg/clearbit"
	"github.com/sells-group/contact-cli/pkg/githubapi"
	"github.com/sells-group/contact-cli/pkg/gsearch"
	"github.com/sells-group/contact-cli/pkg/hunter"
	"github.com/sells-group/contact-cli/pkg/rocketreach"
)

// testLimiter returns a limiter fast enough for tests.
func testLimiter() *ratelimit.Limiter {
	return ratelimit.New(map[string]time.Duration{
		"hunter":      time.Millisecond,
		"apollo":      time.Millisecond,
		"rocketreach": time.Millisecond,
		"generic":     time.Millisecond,
		"google":      time.Millisecond,
		"github":      time.Millisecond,
	})
}

var errBoom = eris.New("boom")

type fakeHunter struct {
	finding *hunter.Finding
	err     error
}

func (f *fakeHunter) FindEmail(_ context.Context, _, _, _ string) (*hunter.Finding, error) {
	return f.finding, f.err
}

type fakeApollo struct {
	person *apollo.Person
	err    error
	gotReq apollo.MatchRequest
}

func (f *fakeApollo) MatchPerson(_ context.Context, req apollo.MatchRequest) (*apollo.Person, error) {
	f.gotReq = req
	return f.person, f.err
}

type fakeRocketReach struct {
	emails []string
	err    error
}

func (f *fakeRocketReach) LookupPerson(_ context.Context, _ rocketreach.LookupRequest) ([]string, error) {
	return f.emails, f.err
}

type fakeClearbit struct {
	person    *clearbit.Person
	err       error
	gotDomain string
}

func (f *fakeClearbit) FindPerson(_ context.Context, domain, _ string) (*clearbit.Person, error) {
	f.gotDomain = domain
	return f.person, f.err
}

type fakeSearch struct {
	pages   []string
	errs    []error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string) (string, error) {
	i := len(f.queries)
	f.queries = append(f.queries, query)
	var page string
	var err error
	if i < len(f.pages) {
		page = f.pages[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return page, err
}

type fakeGitHub struct {
	users     []githubapi.User
	searchErr error
	profiles  map[string]*githubapi.User
	getErr    error
}

func (f *fakeGitHub) SearchUsers(_ context.Context, _ string, limit int) ([]githubapi.User, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	users := f.users
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (f *fakeGitHub) GetUser(_ context.Context, login string) (*githubapi.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.profiles[login]; ok {
		return u, nil
	}
	return &githubapi.User{Login: login}, nil
}

var _ gsearch.Client = (*fakeSearch)(nil)
