// Package service implements the post domain: the visibility policy,
// field validation, the cached title search and event publishing.
package service

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/salvadorperezm/ror-api-creation/events"
	"github.com/salvadorperezm/ror-api-creation/internal/post/model"
	"github.com/salvadorperezm/ror-api-creation/pkg/ttlcache"
	"github.com/salvadorperezm/ror-api-creation/store"
)

// PostStore is the slice of the post repository the service needs.
type PostStore interface {
	ListPublished() ([]model.PostResponse, error)
	ListVisibleTo(userID int64) ([]model.PostResponse, error)
	FindByID(id int64) (*model.PostResponse, error)
	Create(title, content string, published bool, userID int64) (int64, error)
	Update(id int64, title, content string, published bool) (int64, error)
}

// UserStore resolves post owners.
type UserStore interface {
	FindByID(id int64) (*store.User, error)
}

type PostService struct {
	Posts PostStore
	Users UserStore

	searchCache *ttlcache.Cache[[]int64]
	hub         *events.Hub

	// includeOwnDrafts adds the authenticated caller's drafts to the
	// list endpoint's base set.
	includeOwnDrafts bool
}

func NewPostService(posts PostStore, users UserStore, searchCache *ttlcache.Cache[[]int64], hub *events.Hub, includeOwnDrafts bool) *PostService {
	return &PostService{
		Posts:            posts,
		Users:            users,
		searchCache:      searchCache,
		hub:              hub,
		includeOwnDrafts: includeOwnDrafts,
	}
}

// List returns the posts visible to current (who may be nil), narrowed
// by the search query when one is given.
func (s *PostService) List(current *store.User, search string) ([]model.PostResponse, error) {
	var posts []model.PostResponse
	var err error
	if s.includeOwnDrafts && current != nil {
		posts, err = s.Posts.ListVisibleTo(current.ID)
	} else {
		posts, err = s.Posts.ListPublished()
	}
	if err != nil {
		return nil, err
	}

	if search != "" {
		posts = s.searchByTitle(posts, search)
	}
	if posts == nil {
		posts = []model.PostResponse{}
	}
	return posts, nil
}

// Get returns the post if current may view it, ErrNotFound otherwise.
func (s *PostService) Get(current *store.User, id int64) (*model.PostResponse, error) {
	post, err := s.Posts.FindByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !canView(current, post) {
		return nil, ErrNotFound
	}
	return post, nil
}

// Create persists a new post owned by params.UserID. The owner is taken
// from the request as declared, not forced to the caller.
func (s *PostService) Create(params model.CreatePostParams) (*model.PostResponse, error) {
	if err := validatePresence(params.Title, params.Content); err != nil {
		return nil, err
	}

	owner, err := s.Users.FindByID(params.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &ValidationError{Message: "Validation failed: User must exist"}
	}
	if err != nil {
		return nil, err
	}

	id, err := s.Posts.Create(params.Title, params.Content, params.Published, params.UserID)
	if err != nil {
		return nil, err
	}

	post := &model.PostResponse{
		ID:        id,
		Title:     params.Title,
		Content:   params.Content,
		Published: params.Published,
		Author:    model.Author{ID: owner.ID, Name: owner.Name, Email: owner.Email},
	}
	if post.Published {
		s.hub.Publish(events.PostCreated, *post)
	}
	return post, nil
}

// Update mutates a post on behalf of current. A missing post and a post
// owned by somebody else both come back as ErrNotFound.
func (s *PostService) Update(current *store.User, id int64, params model.UpdatePostParams) (*model.PostResponse, error) {
	post, err := s.Posts.FindByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !canEdit(current, post) {
		return nil, ErrNotFound
	}

	// Absent fields keep their stored values.
	if params.Title != nil {
		post.Title = *params.Title
	}
	if params.Content != nil {
		post.Content = *params.Content
	}
	if params.Published != nil {
		post.Published = *params.Published
	}
	if err := validatePresence(post.Title, post.Content); err != nil {
		return nil, err
	}

	affected, err := s.Posts.Update(post.ID, post.Title, post.Content, post.Published)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	if post.Published {
		s.hub.Publish(events.PostUpdated, *post)
	}
	return post, nil
}

// canView: published posts are public, drafts only readable by their
// owner.
func canView(current *store.User, post *model.PostResponse) bool {
	if post.Published {
		return true
	}
	return current != nil && current.ID == post.Author.ID
}

// canEdit: only the owner may mutate a post.
func canEdit(current *store.User, post *model.PostResponse) bool {
	return current != nil && current.ID == post.Author.ID
}

func validatePresence(title, content string) error {
	var blanks []string
	if strings.TrimSpace(title) == "" {
		blanks = append(blanks, "Title can't be blank")
	}
	if strings.TrimSpace(content) == "" {
		blanks = append(blanks, "Content can't be blank")
	}
	if len(blanks) > 0 {
		return &ValidationError{Message: "Validation failed: " + strings.Join(blanks, ", ")}
	}
	return nil
}
