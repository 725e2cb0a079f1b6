package gitapi

import "github.com/kroma-labs/catalyst-go/codec"

// Required keys of the decoded documents. codec.Decode calls these, so a
// reply that parses but carries none of a record's identity, such as an
// object of unrelated fields, fails with KindDecode instead of yielding a
// zero value.

func (r RepoInfo) Validate() error { return requireID(r.ID) }

func (p PullRequest) Validate() error { return requireID(p.ID) }

func (c PullRequestComment) Validate() error { return requireID(c.ID) }

func (c IssueComment) Validate() error { return requireID(c.ID) }

func (t Team) Validate() error { return requireID(t.ID) }

// Validate accepts anonymous contributors, which have no login.
func (u User) Validate() error {
	if u.Type == "Anonymous" {
		return nil
	}
	return requireString("login", u.Login)
}

func (t Tag) Validate() error { return requireString("name", t.Name) }

func (b Branch) Validate() error { return requireString("name", b.Name) }

func (b FullBranch) Validate() error { return requireString("name", b.Name) }

func (c Commit) Validate() error { return requireString("sha", c.SHA) }

func (f PullRequestFile) Validate() error { return requireString("filename", f.Filename) }

func requireID(id int64) error {
	if id == 0 {
		return codec.MissingField("id")
	}
	return nil
}

func requireString(name, v string) error {
	if v == "" {
		return codec.MissingField(name)
	}
	return nil
}
