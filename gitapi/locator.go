package gitapi

import (
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"
)

// DefaultBaseURL is the public API origin.
const DefaultBaseURL = "https://api.github.com"

// Repository names a repository by owner and name.
type Repository struct {
	Owner string
	Name  string
}

// Repo is shorthand for Repository{Owner: owner, Name: name}.
func Repo(owner, name string) Repository {
	return Repository{Owner: owner, Name: name}
}

func (r Repository) String() string { return r.Owner + "/" + r.Name }

// PullRequestReference names one pull request.
type PullRequestReference struct {
	Repo   Repository
	Number int
}

// PR is shorthand for a PullRequestReference.
func PR(owner, name string, number int) PullRequestReference {
	return PullRequestReference{Repo: Repo(owner, name), Number: number}
}

func (p PullRequestReference) String() string {
	return p.Repo.String() + "#" + strconv.Itoa(p.Number)
}

// Locator builds endpoint URLs. Methods are pure; owner, repository,
// user, org and branch names are inserted as given, without escaping.
type Locator struct {
	base string
}

// NewLocator returns a Locator rooted at base. A trailing slash is dropped.
// An empty base means DefaultBaseURL.
func NewLocator(base string) Locator {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return Locator{base: base}
}

// Base returns the API origin.
func (l Locator) Base() string {
	if l.base == "" {
		return DefaultBaseURL
	}
	return l.base
}

func (l Locator) join(parts ...string) string {
	return l.Base() + "/" + strings.Join(parts, "/")
}

func itoa(n int) string     { return strconv.Itoa(n) }
func i64toa(n int64) string { return strconv.FormatInt(n, 10) }

// --- repositories -----------------------------------------------------------

// Repo → {base}/repos/{owner}/{repo}
func (l Locator) Repo(r Repository) string {
	return l.join("repos", r.Owner, r.Name)
}

func (l Locator) Contributors(r Repository) string { return l.Repo(r) + "/contributors" }
func (l Locator) Languages(r Repository) string    { return l.Repo(r) + "/languages" }
func (l Locator) Teams(r Repository) string        { return l.Repo(r) + "/teams" }
func (l Locator) Tags(r Repository) string         { return l.Repo(r) + "/tags" }
func (l Locator) Branches(r Repository) string     { return l.Repo(r) + "/branches" }

// Branch → {base}/repos/{owner}/{repo}/branches/{branch}
func (l Locator) Branch(r Repository, branch string) string {
	return l.Branches(r) + "/" + branch
}

// OwnRepos → {base}/user/repos
func (l Locator) OwnRepos() string { return l.join("user", "repos") }

// UserRepos → {base}/users/{user}/repos
func (l Locator) UserRepos(user string) string { return l.join("users", user, "repos") }

// OrgRepos → {base}/orgs/{org}/repos
func (l Locator) OrgRepos(org string) string { return l.join("orgs", org, "repos") }

// AllRepos → {base}/repositories
func (l Locator) AllRepos() string { return l.join("repositories") }

// --- pull requests ----------------------------------------------------------

// PullRequests → {base}/repos/{owner}/{repo}/pulls
func (l Locator) PullRequests(r Repository) string { return l.Repo(r) + "/pulls" }

// PullRequest → {base}/repos/{owner}/{repo}/pulls/{number}
func (l Locator) PullRequest(p PullRequestReference) string {
	return l.PullRequests(p.Repo) + "/" + itoa(p.Number)
}

func (l Locator) PullRequestCommits(p PullRequestReference) string {
	return l.PullRequest(p) + "/commits"
}

func (l Locator) PullRequestFiles(p PullRequestReference) string {
	return l.PullRequest(p) + "/files"
}

func (l Locator) PullRequestMerge(p PullRequestReference) string {
	return l.PullRequest(p) + "/merge"
}

// --- review comments --------------------------------------------------------

// PullRequestComments → {base}/repos/{owner}/{repo}/pulls/{number}/comments
func (l Locator) PullRequestComments(p PullRequestReference) string {
	return l.PullRequest(p) + "/comments"
}

// AllPullRequestComments → {base}/repos/{owner}/{repo}/pulls/comments
func (l Locator) AllPullRequestComments(r Repository) string {
	return l.PullRequests(r) + "/comments"
}

// PullRequestComment → {base}/repos/{owner}/{repo}/pulls/comments/{id}
func (l Locator) PullRequestComment(r Repository, id int64) string {
	return l.AllPullRequestComments(r) + "/" + i64toa(id)
}

// --- issue comments ---------------------------------------------------------

// IssueComments → {base}/repos/{owner}/{repo}/issues/{number}/comments
func (l Locator) IssueComments(r Repository, issue int) string {
	return l.Repo(r) + "/issues/" + itoa(issue) + "/comments"
}

// RepoIssueComments → {base}/repos/{owner}/{repo}/issues/comments
func (l Locator) RepoIssueComments(r Repository) string {
	return l.Repo(r) + "/issues/comments"
}

// IssueComment → {base}/repos/{owner}/{repo}/issues/comments/{id}
func (l Locator) IssueComment(r Repository, id int64) string {
	return l.RepoIssueComments(r) + "/" + i64toa(id)
}

// WithQuery appends the url-tagged fields of opts to endpoint as query
// parameters. A nil opts, or one whose fields are all empty, returns
// endpoint unchanged. Failures wrap ErrEncode.
func WithQuery(endpoint string, opts any) (string, error) {
	if opts == nil {
		return endpoint, nil
	}
	values, err := query.Values(opts)
	if err != nil {
		return endpoint, &Error{Kind: KindEncode, Op: "query", URL: endpoint, Err: err}
	}
	encoded := values.Encode()
	if encoded == "" {
		return endpoint, nil
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + encoded, nil
}
