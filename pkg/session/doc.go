// Package session keeps per-client state on the server, keyed by a random
// token sent to the client in an encrypted cookie.
//
// A Manager has no global state. Its Middleware starts the session for each
// request, puts it into the request context and saves it afterwards if a
// handler changed it:
//
//	cookies, _ := cookie.New([]string{secret})
//	sessions, err := session.New(
//	    session.WithCookieManager(cookies),
//	    session.WithStore(session.NewRedisStore(client)),
//	)
//	if err != nil {
//	    return err
//	}
//	defer sessions.Close()
//
//	r.Use(sessions.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    s := session.MustFromContext(r.Context())
//	    n, _ := s.GetInt("visits")
//	    s.Set("visits", n+1)
//	}
//
// Regenerate issues a fresh token (after login, for example) and Destroy
// removes the session along with its cookie.
//
// Sessions expire after IdleTimeout without activity and never live longer
// than MaxLifetime. Expiry is refreshed at most once per
// ActivityUpdateThreshold.
package session
