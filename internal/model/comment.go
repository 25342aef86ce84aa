package model

// Comment is the immutable input unit: one social-media comment plus the
// author and engagement metadata the triage heuristics need.
type Comment struct {
	ID              string `json:"id"`
	Text            string `json:"text"`
	AuthorUsername  string `json:"author_username"`
	AuthorBio       string `json:"author_bio,omitempty"`
	AuthorFollowers int    `json:"author_followers"`
	Verified        bool   `json:"verified"`
	Likes           int    `json:"likes"`
	Replies         int    `json:"replies"`
	Shares          int    `json:"shares"`
	Context         string `json:"context,omitempty"`

	// AccountAgeDays is nil when the account age is unknown; unknown accounts
	// are treated as old for anomaly purposes.
	AccountAgeDays *int `json:"account_age_days,omitempty"`
}

// Validate rejects malformed comments before they enter the pipeline.
func (c *Comment) Validate() error {
	if c.Text == "" {
		return &ValidationError{CommentID: c.ID, Field: "text", Reason: "must not be empty"}
	}
	if c.AuthorFollowers < 0 {
		return &ValidationError{CommentID: c.ID, Field: "author_followers", Reason: "must be non-negative"}
	}
	if c.Likes < 0 {
		return &ValidationError{CommentID: c.ID, Field: "likes", Reason: "must be non-negative"}
	}
	if c.Replies < 0 {
		return &ValidationError{CommentID: c.ID, Field: "replies", Reason: "must be non-negative"}
	}
	if c.Shares < 0 {
		return &ValidationError{CommentID: c.ID, Field: "shares", Reason: "must be non-negative"}
	}
	if c.AccountAgeDays != nil && *c.AccountAgeDays < 0 {
		return &ValidationError{CommentID: c.ID, Field: "account_age_days", Reason: "must be non-negative"}
	}
	return nil
}

// Engagement is the total engagement weight of the comment, used by the
// aggregator's manipulation-influence metric.
func (c *Comment) Engagement() int {
	return c.Likes + c.Replies + c.Shares
}
