package gitapi

import "time"

// User is an account as embedded in most API documents.
type User struct {
	Login             string `json:"login"`
	ID                int64  `json:"id"`
	NodeID            string `json:"node_id,omitempty"`
	Type              string `json:"type,omitempty"`
	AvatarURL         string `json:"avatar_url"`
	GravatarID        string `json:"gravatar_id"`
	URL               string `json:"url,omitempty"`
	HTMLURL           string `json:"html_url"`
	FollowersURL      string `json:"followers_url"`
	FollowingURL      string `json:"following_url"`
	GistsURL          string `json:"gists_url"`
	StarredURL        string `json:"starred_url"`
	SubscriptionsURL  string `json:"subscriptions_url"`
	OrganizationsURL  string `json:"organizations_url"`
	ReposURL          string `json:"repos_url"`
	EventsURL         string `json:"events_url"`
	ReceivedEventsURL string `json:"received_events_url"`
	SiteAdmin         bool   `json:"site_admin"`
}

// GitUser is the author or committer recorded in a git object.
type GitUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// CommitAuthor is a GitUser with the time of the action.
type CommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// TreeNode points at a git object by URL and SHA.
type TreeNode struct {
	URL string `json:"url"`
	SHA string `json:"sha"`
}

// CommitSummary is the git-level part of a Commit.
type CommitSummary struct {
	URL          string       `json:"url"`
	Author       CommitAuthor `json:"author"`
	Committer    CommitAuthor `json:"committer"`
	Message      string       `json:"message"`
	Tree         TreeNode     `json:"tree"`
	CommentCount int          `json:"comment_count"`
}

// Commit is a commit as returned by the commits endpoints. Author and
// Committer are nil when the git identity maps to no account.
type Commit struct {
	URL         string        `json:"url"`
	SHA         string        `json:"sha"`
	HTMLURL     string        `json:"html_url"`
	CommentsURL string        `json:"comments_url"`
	Commit      CommitSummary `json:"commit"`
	Author      *User         `json:"author"`
	Committer   *User         `json:"committer"`
	Parents     []TreeNode    `json:"parents"`
}

// PushCommit is one commit of a push event.
type PushCommit struct {
	ID        string    `json:"id"`
	TreeID    string    `json:"tree_id,omitempty"`
	Distinct  bool      `json:"distinct"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url"`
	Author    GitUser   `json:"author"`
	Committer GitUser   `json:"committer"`
	Added     []string  `json:"added"`
	Removed   []string  `json:"removed"`
	Modified  []string  `json:"modified"`
}
