package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/desertthunder/nmp/internal/tasks"
)

// ControlAPI exposes a [tasks.Session] over JSON. It implements [Handler], so a router
// mounts it with [BasicRouter.Handler].
type ControlAPI struct {
	session *tasks.Session
	mux     *http.ServeMux
	routes  []string
}

// NewControlAPI creates the API over session.
func NewControlAPI(session *tasks.Session) *ControlAPI {
	a := &ControlAPI{session: session, mux: http.NewServeMux()}

	a.route("GET /api/status", a.status)
	a.route("GET /api/songs", a.songs)
	a.route("GET /api/settings", a.settings)

	a.route("POST /api/playback/{action}", a.playback)
	a.route("POST /api/play", a.play)
	a.route("POST /api/view", a.setView)
	a.route("POST /api/volume", a.volume)
	a.route("POST /api/holiday", a.holiday)
	a.route("POST /api/artists", a.artists)

	a.route("GET /api/playlists", a.playlists)
	a.route("POST /api/playlists", a.createPlaylist)
	a.route("GET /api/playlists/{name}", a.playlist)
	a.route("DELETE /api/playlists/{name}", a.deletePlaylist)
	a.route("POST /api/playlists/{name}/songs", a.addSong)
	a.route("DELETE /api/playlists/{name}/songs/{filename}", a.removeSong)
	return a
}

func (a *ControlAPI) route(pattern string, fn http.HandlerFunc) {
	a.mux.HandleFunc(pattern, fn)
	a.routes = append(a.routes, pattern)
}

// Routes implements [Handler].
func (a *ControlAPI) Routes() []string { return slices.Clone(a.routes) }

// ServeHTTP implements [http.Handler].
func (a *ControlAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

type songRequest struct {
	Index    *int   `json:"index,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type viewRequest struct {
	Section  string `json:"section,omitempty"`
	Playlist string `json:"playlist,omitempty"`
}

type volumeRequest struct {
	Level *int  `json:"level,omitempty"`
	Mute  *bool `json:"mute,omitempty"`
}

type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

type artistsRequest struct {
	Artists []string `json:"artists"`
}

type playlistRequest struct {
	Name string `json:"name"`
}

type playlistResponse struct {
	Name  string        `json:"name"`
	Kind  string        `json:"kind"`
	Songs []models.Song `json:"songs"`
}

type summaryResponse struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Songs    int    `json:"songs"`
	InSeason bool   `json:"inSeason"`
}

func (a *ControlAPI) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.session.Status())
}

func (a *ControlAPI) settings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.session.Settings())
}

// songs lists the active list, or the search results when q is set.
func (a *ControlAPI) songs(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, http.StatusOK, a.session.Search(q))
		return
	}

	var songs []models.Song
	a.session.Inspect(func(e *engine.Engine) { songs = e.Active() })
	writeJSON(w, http.StatusOK, songs)
}

func (a *ControlAPI) playback(w http.ResponseWriter, r *http.Request) {
	var err error
	switch action := r.PathValue("action"); action {
	case "toggle":
		err = a.session.TogglePlayPause()
	case "next":
		err = a.session.Next()
	case "previous":
		err = a.session.Previous()
	case "stop":
		a.session.Stop()
	case "shuffle":
		a.session.ToggleShuffle()
	case "repeat":
		a.session.CycleRepeat()
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown action %q", action))
		return
	}

	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.session.Status())
}

func (a *ControlAPI) play(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if !decode(w, r, &req) {
		return
	}

	var err error
	switch {
	case req.Filename != "":
		err = a.session.PlayFilename(req.Filename)
	case req.Index != nil:
		err = a.session.Play(*req.Index)
	default:
		err = fmt.Errorf("%w: index or filename", shared.ErrMissingArgument)
	}
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.session.Status())
}

func (a *ControlAPI) setView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !decode(w, r, &req) {
		return
	}

	var err error
	switch {
	case req.Playlist != "":
		err = a.session.OpenPlaylist(req.Playlist)
	case req.Section != "":
		sec, ok := models.ParseSection(req.Section)
		if !ok {
			err = fmt.Errorf("%w: unknown section %q", shared.ErrInvalidArgument, req.Section)
			break
		}
		err = a.session.ShowSection(sec)
	default:
		err = fmt.Errorf("%w: section or playlist", shared.ErrMissingArgument)
	}
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.session.Status())
}

func (a *ControlAPI) volume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Level != nil {
		a.session.SetVolume(*req.Level)
	}
	if req.Mute != nil && *req.Mute != a.session.Status().Muted {
		a.session.ToggleMute()
	}
	writeJSON(w, http.StatusOK, a.session.Status())
}

func (a *ControlAPI) holiday(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decode(w, r, &req) {
		return
	}
	a.session.SetHolidayMode(req.Enabled)
	writeJSON(w, http.StatusOK, a.session.Status())
}

func (a *ControlAPI) artists(w http.ResponseWriter, r *http.Request) {
	var req artistsRequest
	if !decode(w, r, &req) {
		return
	}

	set := engine.NewArtistSet()
	for _, name := range req.Artists {
		artist, ok := models.ParseArtist(name)
		if !ok || artist == models.Unknown {
			writeSessionError(w, fmt.Errorf("%w: unknown artist %q", shared.ErrInvalidArgument, name))
			return
		}
		set = set.With(artist)
	}
	a.session.SetArtists(set)
	writeJSON(w, http.StatusOK, a.session.Status())
}

func (a *ControlAPI) playlists(w http.ResponseWriter, r *http.Request) {
	var overview []engine.PlaylistSummary
	a.session.Inspect(func(e *engine.Engine) { overview = e.Overview() })

	out := make([]summaryResponse, 0, len(overview))
	for _, p := range overview {
		out = append(out, summaryResponse{Name: p.Name, Kind: p.Kind.String(), Songs: p.Songs, InSeason: p.InSeason})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *ControlAPI) playlist(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var (
		songs  []models.Song
		exists bool
	)
	a.session.Inspect(func(e *engine.Engine) {
		exists = e.Playlists().Exists(name) || !models.IsCustom(name)
		songs = e.PlaylistSongs(name)
	})
	if !exists {
		writeSessionError(w, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name))
		return
	}
	writeJSON(w, http.StatusOK, playlistResponse{Name: name, Kind: models.KindOf(name).String(), Songs: songs})
}

func (a *ControlAPI) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if !decode(w, r, &req) {
		return
	}
	name, err := a.session.CreatePlaylist(req.Name)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlistResponse{Name: name, Kind: models.KindOf(name).String(), Songs: []models.Song{}})
}

func (a *ControlAPI) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := a.session.DeletePlaylist(r.PathValue("name")); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *ControlAPI) addSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if !decode(w, r, &req) {
		return
	}
	added, err := a.session.AddToPlaylist(r.PathValue("name"), req.Filename)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (a *ControlAPI) removeSong(w http.ResponseWriter, r *http.Request) {
	removed, err := a.session.RemoveFromPlaylist(r.PathValue("name"), r.PathValue("filename"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// statusFor maps session errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrSongNotFound), errors.Is(err, shared.ErrPlaylistNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrPlaylistExists), errors.Is(err, shared.ErrLinkedMember):
		return http.StatusConflict
	case errors.Is(err, shared.ErrReservedPlaylist):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrEmptyPlaylist),
		errors.Is(err, shared.ErrIndexOutOfRange),
		errors.Is(err, shared.ErrInvalidPlaylistName),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeSessionError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
