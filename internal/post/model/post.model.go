package model

// Author is the embedded owner sub-object on every post representation.
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PostResponse is the wire representation of a post. Author.ID is the
// owning user's id.
type PostResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	Author    Author `json:"author"`
}

type CreatePostRequest struct {
	Post CreatePostParams `json:"post"`
}

// CreatePostParams names its own owner via UserID; it is not forced to
// equal the authenticated caller.
type CreatePostParams struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	UserID    int64  `json:"user_id"`
}

type UpdatePostRequest struct {
	Post UpdatePostParams `json:"post"`
}

// UpdatePostParams uses pointers so an absent field leaves the stored
// value untouched while an explicit empty string still fails validation.
type UpdatePostParams struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
