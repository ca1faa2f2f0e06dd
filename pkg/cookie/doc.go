// Package cookie reads and writes HTTP cookies.
//
// A Manager carries default attributes (path "/", HttpOnly, SameSite=Lax,
// one hour lifetime) that per-call Options override:
//
//	man, err := cookie.New(nil)
//	if err != nil {
//	    return err
//	}
//
//	_ = man.Set(w, "theme", "dark", cookie.WithMaxAge(30*24*3600))
//	theme, err := man.Get(r, "theme")     // ErrCookieNotFound when absent
//	ok := man.Exists(r, "theme")
//	man.Delete(w, r, "theme")             // also hidden from r from now on
//
// With one or more secrets (32+ characters) the Manager can also sign
// values with HMAC-SHA256 (SetSigned/GetSigned) or seal them with
// AES-256-GCM (SetEncrypted/GetEncrypted). The first secret writes; all of
// them are tried when reading, which allows key rotation.
package cookie
