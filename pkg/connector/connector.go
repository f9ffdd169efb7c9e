// mautrix-twitter - A Matrix-Twitter puppeting bridge.
// Copyright (C) 2024 Tulir Asokan
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package connector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/beeper/profilehub/pkg/profile"
	"github.com/beeper/profilehub/pkg/profilego"
	"github.com/beeper/profilehub/pkg/profilego/cookies"
)

type NetworkName struct {
	DisplayName string
	NetworkID   string
	DefaultPort uint16
}

// ProfileConnector wires the API client to the session shared by every
// profile page of one viewer.
type ProfileConnector struct {
	Config  *Config
	Log     zerolog.Logger
	Client  *profilego.Client
	Session *profile.Session

	listenerLock sync.RWMutex
	listeners    []func(evt any)
}

func NewProfileConnector(cfg *Config, log zerolog.Logger) (*ProfileConnector, error) {
	pc := &ProfileConnector{
		Config: cfg,
		Log:    log.With().Str("component", "profile_connector").Logger(),
	}
	pc.Client = profilego.NewClient(&profilego.ClientOpts{
		BaseURL:      cfg.BaseURL,
		Cookies:      cookies.NewCookiesFromString(cfg.Cookies),
		EventHandler: pc.HandleClientEvent,
		Timeout:      cfg.RequestTimeout,
	}, log.With().Str("component", "profile_client").Logger())
	if cfg.Proxy != "" {
		if err := pc.Client.SetProxy(cfg.Proxy); err != nil {
			return nil, fmt.Errorf("failed to set proxy: %w", err)
		}
	}
	pc.Session = profile.NewSession(nil, pc.notify)
	return pc, nil
}

func (pc *ProfileConnector) GetName() NetworkName {
	return NetworkName{
		DisplayName: "Profile Hub",
		NetworkID:   "profilehub",
		DefaultPort: 29327,
	}
}

// Start resolves the session user from the configured cookies. Missing
// cookies are not an error: pages stay in their loading state until a login
// succeeds.
func (pc *ProfileConnector) Start(ctx context.Context) error {
	_, err := pc.Client.LoadSession(ctx)
	if errors.Is(err, profilego.ErrNotLoggedIn) {
		pc.Log.Warn().Msg("No session cookies configured, profiles will not load until login")
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	return nil
}

func (pc *ProfileConnector) NewPage() *profile.Page {
	return profile.NewPage(pc.Client, pc.Session, profile.PageOpts{
		FetchTimeout: pc.Config.FetchTimeout,
		EventHandler: pc.HandlePageEvent,
	}, pc.Log)
}

// AddEventListener registers fn for client, session and page events.
func (pc *ProfileConnector) AddEventListener(fn func(evt any)) {
	pc.listenerLock.Lock()
	defer pc.listenerLock.Unlock()
	pc.listeners = append(pc.listeners, fn)
}

func (pc *ProfileConnector) Logout(ctx context.Context) error {
	return pc.Client.Logout(ctx)
}

func (pc *ProfileConnector) notify(evt any) {
	pc.listenerLock.RLock()
	listeners := pc.listeners
	pc.listenerLock.RUnlock()
	for _, fn := range listeners {
		fn(evt)
	}
}
