package service

import (
	"strings"

	"github.com/salvadorperezm/ror-api-creation/internal/post/model"
)

const searchKeyPrefix = "posts_search/"

// searchByTitle narrows posts to those whose title contains query as a
// literal, case-sensitive substring. Matching id sets are cached under
// the raw query string, shared across all callers, for the cache's TTL.
//
// The returned posts are always re-derived by filtering the posts
// passed in against the (possibly stale) cached id set. This
// intersection confines a reused entry to the caller's own visible set;
// it must never be skipped, or a cache hit could resurface posts the
// caller is not allowed to see.
func (s *PostService) searchByTitle(posts []model.PostResponse, query string) []model.PostResponse {
	key := searchKeyPrefix + query

	ids, ok := s.searchCache.Get(key)
	if !ok {
		// strings.Contains treats query as plain text, so characters
		// that are pattern syntax elsewhere (%, _) match literally.
		// The empty query is a substring of every title.
		ids = make([]int64, 0, len(posts))
		for _, p := range posts {
			if strings.Contains(p.Title, query) {
				ids = append(ids, p.ID)
			}
		}
		s.searchCache.Set(key, ids)
	}

	keep := make(map[int64]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	var matched []model.PostResponse
	for _, p := range posts {
		if keep[p.ID] {
			matched = append(matched, p)
		}
	}
	return matched
}
