package common

import (
	"net"
	"net/http"
	"strings"
)

var skippedSubdomains = map[string]struct{}{
	"www": {}, "admin": {}, "api": {}, "mail": {}, "ftp": {}, "smtp": {},
}

// SiteFromHost returns the website slug addressed by a {slug}.{baseDomain}
// host, or "" when the host is the platform itself.
func SiteFromHost(host, baseDomain string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	suffix := "." + strings.ToLower(baseDomain)
	if baseDomain == "" || !strings.HasSuffix(host, suffix) {
		return ""
	}
	sub := strings.TrimSuffix(host, suffix)
	if sub == "" || strings.Contains(sub, ".") {
		return ""
	}
	if _, skip := skippedSubdomains[sub]; skip {
		return ""
	}
	return sub
}

// SubdomainHandler rewrites {slug}.{baseDomain}/path to /{slug}/path before
// the router sees the request, so subdomain and path addressing share routes.
// Paths already carrying the slug are left alone.
func SubdomainHandler(baseDomain string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slug := SiteFromHost(r.Host, baseDomain); slug != "" {
			prefix := "/" + slug
			path := r.URL.Path
			if path != prefix && !strings.HasPrefix(path, prefix+"/") {
				if path == "/" {
					path = ""
				}
				r.URL.Path = prefix + path
				r.URL.RawPath = ""
			}
		}
		next.ServeHTTP(w, r)
	})
}
