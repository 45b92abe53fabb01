// Package resilience provides fault tolerance patterns for the application.
//
// The circuitbreaker subpackage wraps the article store so that a failing
// backend is reported as unavailable instead of piling up slow requests.
// Version conflicts and caller cancellations are not counted as failures.
// Nothing in this tree retries a store call.
//
// Usage Example:
//
//	store := circuitbreaker.NewStore(postgres.NewArticleRepo(db))
//	article, err := store.FindActive(ctx, id)
//	if errors.Is(err, circuitbreaker.ErrStoreUnavailable) {
//	    // respond 503
//	}
package resilience
