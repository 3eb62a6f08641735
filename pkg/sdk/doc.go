// Package sdk provides an HTTP client for a remote casefind service.
//
// It talks to the JSON API exposed by cmd/casefind and mirrors its wire
// types, so applications can depend on this package alone without
// importing the engine itself. For in-process use without a server, see
// the root casefind package instead.
//
//	client, _ := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	resp, err := client.Search(ctx, sdk.SearchRequest{
//	    Text:       "employer not paying salary",
//	    Categories: []string{"employment"},
//	    Highlight:  true,
//	})
//
// All methods return *APIError for non-2xx responses; use errors.Is with
// the exported sentinels (ErrUnauthorized, ErrUnavailable, ...) to branch
// on the failure class.
package sdk
