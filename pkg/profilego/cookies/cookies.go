package cookies

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

type SessionCookieName string

const (
	SessionToken SessionCookieName = "token"
	RefreshToken SessionCookieName = "refreshToken"
	CsrfToken    SessionCookieName = "XSRF-TOKEN"
)

type Cookies struct {
	Store map[SessionCookieName]string
	lock  sync.RWMutex
}

func NewCookies() *Cookies {
	return &Cookies{
		Store: make(map[SessionCookieName]string),
	}
}

func NewCookiesFromString(cookieStr string) *Cookies {
	c := NewCookies()
	fakeHeader := http.Header{}
	for _, part := range strings.Split(cookieStr, ";") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			fakeHeader.Add("Set-Cookie", trimmed)
		}
	}
	fakeResponse := &http.Response{Header: fakeHeader}

	for _, cookie := range fakeResponse.Cookies() {
		c.Store[SessionCookieName(cookie.Name)] = cookie.Value
	}

	return c
}

// String renders the store as a Cookie header value with a stable order.
func (c *Cookies) String() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	out := make([]string, 0, len(c.Store))
	for k, v := range c.Store {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return strings.Join(out, "; ")
}

func (c *Cookies) IsCookieEmpty(key SessionCookieName) bool {
	return c.Get(key) == ""
}

func (c *Cookies) Get(key SessionCookieName) string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.Store[key]
}

func (c *Cookies) Set(key SessionCookieName, value string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Store[key] = value
}

func (c *Cookies) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Store = make(map[SessionCookieName]string)
}

func (c *Cookies) UpdateFromResponse(r *http.Response) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, cookie := range r.Cookies() {
		if cookie.MaxAge < 0 || (!cookie.Expires.IsZero() && cookie.Expires.Before(time.Now())) {
			delete(c.Store, SessionCookieName(cookie.Name))
		} else {
			c.Store[SessionCookieName(cookie.Name)] = cookie.Value
		}
	}
}
