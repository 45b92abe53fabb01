package pathutil

import "strings"

const (
	articlesPrefix = "/api/v1/articles/"
	swaggerPrefix  = "/swagger/"
)

// NormalizePath maps a request path onto its route template so metric
// labels and span names do not grow with every article id.
// Query strings and a single trailing slash are ignored. Paths that are
// not a parameterized route come back unchanged.
//
//	/api/v1/articles/0190f1f2-...   -> /api/v1/articles/:id
//	/api/v1/articles:search?x=1     -> /api/v1/articles:search
//	/swagger/index.html             -> /swagger/*
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	switch {
	case strings.HasPrefix(path, articlesPrefix):
		id := path[len(articlesPrefix):]
		// ネストしたパスやコロン付きのカスタムメソッドは対象外
		if id != "" && !strings.ContainsAny(id, "/:") {
			return articlesPrefix + ":id"
		}
	case strings.HasPrefix(path, swaggerPrefix) && len(path) > len(swaggerPrefix):
		return swaggerPrefix + "*"
	}
	return path
}
