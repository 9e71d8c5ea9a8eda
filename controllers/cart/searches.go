package cartControllers

import (
	"context"
)

// Recent searches live next to the cart in the same preference store. They
// are kept distinct and capped, newest first.

func searchKey(email string) string {
	return "searches:" + email
}

// RecordSearch remembers a non-blank query for the user.
func (e *Engine) RecordSearch(ctx context.Context, email, query string) {
	if e.rdb == nil || query == "" {
		return
	}
	pipe := e.rdb.TxPipeline()
	pipe.LRem(ctx, searchKey(email), 0, query)
	pipe.LPush(ctx, searchKey(email), query)
	pipe.LTrim(ctx, searchKey(email), 0, maxRecentSearches-1)
	_, _ = pipe.Exec(ctx)
}

func (e *Engine) RecentSearches(ctx context.Context, email string) []string {
	if e.rdb == nil {
		return nil
	}
	vals, err := e.rdb.LRange(ctx, searchKey(email), 0, maxRecentSearches-1).Result()
	if err != nil {
		return nil
	}
	return vals
}

func (e *Engine) ClearRecentSearches(ctx context.Context, email string) {
	if e.rdb == nil {
		return
	}
	_ = e.rdb.Del(ctx, searchKey(email)).Err()
}
