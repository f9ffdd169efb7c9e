package profilego

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/proxy"

	"github.com/beeper/profilehub/pkg/profilego/cookies"
	"github.com/beeper/profilehub/pkg/profilego/event"
	"github.com/beeper/profilehub/pkg/profilego/routing"
	queryData "github.com/beeper/profilehub/pkg/profilego/routing/query"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

const DefaultBaseURL = "http://localhost:5000"

type EventHandler func(evt any)
type ClientOpts struct {
	BaseURL      string
	Cookies      *cookies.Cookies
	EventHandler EventHandler
	Timeout      time.Duration
}
type Client struct {
	Logger       zerolog.Logger
	baseURL      string
	cookies      *cookies.Cookies
	http         *http.Client
	httpProxy    func(*http.Request) (*url.URL, error)
	socksProxy   proxy.Dialer
	eventHandler EventHandler

	userLock    sync.RWMutex
	currentUser *types.User
}

func NewClient(opts *ClientOpts, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cli := Client{
		http: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 40 * time.Second,
				ForceAttemptHTTP2:     true,
			},
			Timeout: timeout,
		},
		Logger:  logger,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
	if cli.baseURL == "" {
		cli.baseURL = DefaultBaseURL
	}

	if opts.EventHandler != nil {
		cli.SetEventHandler(opts.EventHandler)
	}

	if opts.Cookies != nil {
		cli.cookies = opts.Cookies
	} else {
		cli.cookies = cookies.NewCookies()
	}

	return &cli
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) IsLoggedIn() bool {
	return !c.cookies.IsCookieEmpty(cookies.SessionToken)
}

func (c *Client) Logout(ctx context.Context) error {
	logoutQuery := &queryData.LogoutQuery{
		CsrfToken: c.cookies.Get(cookies.CsrfToken),
	}
	_, _, err := c.MakeRoutingRequest(ctx, routing.LOGOUT_URL, nil, nil, logoutQuery)
	c.cookies.Clear()
	c.setCurrentUser(nil)
	c.dispatch(event.LoggedOut{})
	return err
}

func (c *Client) GetCookieString() string {
	return c.cookies.String()
}

// SetCookies replaces the cookie jar. The resolved session user is dropped.
func (c *Client) SetCookies(jar *cookies.Cookies) {
	if jar == nil {
		jar = cookies.NewCookies()
	}
	c.cookies = jar
	c.setCurrentUser(nil)
}

func (c *Client) SetProxy(proxyAddr string) error {
	proxyParsed, err := url.Parse(proxyAddr)
	if err != nil {
		return err
	}

	if proxyParsed.Scheme == "http" || proxyParsed.Scheme == "https" {
		c.httpProxy = http.ProxyURL(proxyParsed)
		c.http.Transport.(*http.Transport).Proxy = c.httpProxy
	} else if proxyParsed.Scheme == "socks5" {
		c.socksProxy, err = proxy.FromURL(proxyParsed, &net.Dialer{Timeout: 20 * time.Second})
		if err != nil {
			return err
		}
		c.http.Transport.(*http.Transport).DialContext = func(ctx context.Context, network string, addr string) (net.Conn, error) {
			return c.socksProxy.Dial(network, addr)
		}
		contextDialer, ok := c.socksProxy.(proxy.ContextDialer)
		if ok {
			c.http.Transport.(*http.Transport).DialContext = contextDialer.DialContext
		}
	}

	c.Logger.Debug().
		Str("scheme", proxyParsed.Scheme).
		Str("host", proxyParsed.Host).
		Msg("Using proxy")
	return nil
}

func (c *Client) SetEventHandler(handler EventHandler) {
	c.eventHandler = handler
}

func (c *Client) dispatch(evt any) {
	if c.eventHandler != nil {
		c.eventHandler(evt)
	}
}
