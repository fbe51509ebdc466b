// Package server provides the local HTTP control API for a running player session.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so path wildcards are read
// with [http.Request.PathValue] and wrong methods get 405 from the mux.
//
// # Middleware
//
//   - [Recover] converts panics into JSON 500 responses
//   - [RequestID] echoes or assigns an X-Request-ID header
//   - [Logging] logs method, path, status and duration at debug level
//   - [RateLimit] rejects bursts with 429 using golang.org/x/time/rate
//
// # Control API
//
// [ControlAPI] maps JSON requests onto a [tasks.Session]:
//
//	GET    /api/status                          transport, view and filter snapshot
//	GET    /api/songs?q=                        active list or search results
//	GET    /api/settings                        settings as they would be saved
//	POST   /api/playback/{action}               toggle, next, previous, stop, shuffle, repeat
//	POST   /api/play                            {"index": 2} or {"filename": "..."}
//	POST   /api/view                            {"section": "favorites"} or {"playlist": "..."}
//	POST   /api/volume                          {"level": 40, "mute": false}
//	POST   /api/holiday                         {"enabled": true}
//	POST   /api/artists                         {"artists": ["Neuro", "Duet"]}
//	GET    /api/playlists                       overview
//	POST   /api/playlists                       {"name": "..."}
//	GET    /api/playlists/{name}                resolved songs
//	DELETE /api/playlists/{name}
//	POST   /api/playlists/{name}/songs          {"filename": "..."}
//	DELETE /api/playlists/{name}/songs/{filename}
//
// Session sentinel errors map to 400, 403, 404 and 409 responses with an {"error": "..."} body.
//
// [Server] binds the configured host and port and shuts down gracefully when its context ends.
package server
