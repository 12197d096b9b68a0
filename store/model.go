package store

// User is an account record. Users are created out of band (see the seed
// command); this API only ever reads them.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AuthToken string `json:"-"`
}

// Post always has exactly one owner, referenced by UserID.
// Published=false posts are drafts, visible only to their owner.
type Post struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	UserID    int64  `json:"user_id"`
}
