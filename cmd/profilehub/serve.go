package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/spf13/cobra"
	"go.mau.fi/util/exhttp"

	"github.com/beeper/profilehub/pkg/connector"
	"github.com/beeper/profilehub/pkg/profile"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rendered profile views as JSON",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default: listen from the config)")
}

type errorResponse struct {
	Error   string `json:"error"`
	ErrCode string `json:"errcode"`
}

type profileServer struct {
	pc *connector.ProfileConnector
}

func newRouter(pc *connector.ProfileConnector) *mux.Router {
	s := &profileServer{pc: pc}
	router := mux.NewRouter()
	router.Use(hlog.NewHandler(pc.Log))
	router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("Handled request")
	}))
	router.HandleFunc("/whoami", s.whoami).Methods(http.MethodGet)
	router.HandleFunc("/login", s.login).Methods(http.MethodPost)
	router.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	router.HandleFunc("/profile/{id}", s.view).Methods(http.MethodGet)
	router.HandleFunc("/profile/{id}/{sub:.*}", s.view).Methods(http.MethodGet)
	return router
}

func (s *profileServer) whoami(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{"logged_in": false}
	if user := s.pc.Session.User(); user != nil {
		response["logged_in"] = true
		response["displayname"] = s.pc.Config.FormatDisplayname(user.FirstName, user.LastName)
		response["user"] = user
	}
	exhttp.WriteJSONResponse(w, http.StatusOK, response)
}

func (s *profileServer) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body map[string]map[string]string
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: err.Error(), ErrCode: "M_BAD_JSON"})
		return
	}
	cookieString := body["all_headers"]["Cookie"]

	user, err := s.pc.SubmitCookies(ctx, cookieString)
	if errors.Is(err, connector.ErrInvalidCookies) {
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: err.Error(), ErrCode: "M_BAD_COOKIES"})
	} else if err != nil {
		zerolog.Ctx(ctx).Err(err).Msg("Failed to log in")
		exhttp.WriteJSONResponse(w, http.StatusUnauthorized, errorResponse{Error: profile.DisplayMessage(err), ErrCode: "M_FORBIDDEN"})
	} else {
		exhttp.WriteJSONResponse(w, http.StatusOK, map[string]any{"user_id": user.ID})
	}
}

func (s *profileServer) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.pc.Logout(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Err(err).Msg("Remote logout failed, local session cleared anyway")
	}
	exhttp.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"status":  "logged_out",
	})
}

// view renders one profile location. Each request gets its own page, so
// concurrent requests never share navigation state.
func (s *profileServer) view(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	loc := profile.Location{ProfileID: vars["id"], SubPath: "/" + vars["sub"], RawQuery: r.URL.RawQuery}

	page := s.pc.NewPage()
	defer page.Close()
	v, err := page.Open(r.Context(), loc.String())
	if err != nil {
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: err.Error(), ErrCode: "M_INVALID_PARAM"})
		return
	}

	doc := s.pc.Config.MapView(v)
	status := http.StatusOK
	switch {
	case doc.View == profile.ViewNotFound.String():
		status = http.StatusNotFound
	case doc.Loading:
		status = http.StatusUnauthorized
	}
	exhttp.WriteJSONResponse(w, status, doc)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	pc, err := startConnector(ctx, nil)
	if err != nil {
		return err
	}
	addr := listenAddr
	if addr == "" {
		addr = pc.Config.Listen
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(pc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	pc.Log.Info().Str("address", addr).Msg("Serving profile views")
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
