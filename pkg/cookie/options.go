package cookie

import "net/http"

// DefaultMaxAge is the lifetime applied by Set when none is configured.
const DefaultMaxAge = 3600

// Options are the attributes written with a cookie.
// MaxAge is in seconds; zero makes a browser-session cookie and a negative
// value deletes the cookie.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

func WithDomain(domain string) Option {
	return func(o *Options) { o.Domain = domain }
}

// WithMaxAge sets the lifetime in seconds.
func WithMaxAge(seconds int) Option {
	return func(o *Options) { o.MaxAge = seconds }
}

func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) { o.HttpOnly = httpOnly }
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) { o.SameSite = sameSite }
}

func defaultOptions() Options {
	return Options{
		Path:     "/",
		MaxAge:   DefaultMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// apply returns a copy of base with opts applied.
func (base Options) apply(opts []Option) Options {
	o := base
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
