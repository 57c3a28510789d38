package request

import (
	"net"
	"net/http"
	"strings"

	"realty/pkg/requestcontext"

	"github.com/mssola/useragent"
)

// ClientMetadata stores the peer address and User-Agent in the request context.
// Forwarding headers are ignored; the service is expected to sit behind a
// proxy that rewrites RemoteAddr when needed.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), remoteIP(r.RemoteAddr), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func remoteIP(addr string) string {
	if addr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// Client is the parsed form of a User-Agent header.
type Client struct {
	Browser string
	OS      string
	Mobile  bool
	Bot     bool
}

// DescribeClient parses a User-Agent header. Empty input yields an unknown client.
func DescribeClient(userAgent string) Client {
	if userAgent == "" {
		return Client{}
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	return Client{
		Browser: strings.TrimSpace(browser),
		OS:      strings.TrimSpace(ua.OS()),
		Mobile:  ua.Mobile(),
		Bot:     ua.Bot(),
	}
}

// String renders "Browser on OS", e.g. "Chrome on Windows 10".
func (c Client) String() string {
	browser := c.Browser
	if browser == "" {
		browser = "unknown browser"
	}
	if c.OS == "" {
		return browser
	}
	return browser + " on " + c.OS
}
