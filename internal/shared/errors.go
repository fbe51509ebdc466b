package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Library and playback errors
	ErrSongNotFound     = fmt.Errorf("song not found")
	ErrEmptyPlaylist    = fmt.Errorf("playlist is empty")
	ErrIndexOutOfRange  = fmt.Errorf("index out of range")
	ErrNothingLoaded    = fmt.Errorf("no song loaded")
	ErrPlayerDisabled   = fmt.Errorf("audio output unavailable in this build")
	ErrUnsupportedAudio = fmt.Errorf("unsupported audio format")
	ErrUnknownPreset    = fmt.Errorf("unknown equalizer preset")
	ErrUnknownBand      = fmt.Errorf("unknown equalizer band")

	// Playlist errors
	ErrPlaylistNotFound    = fmt.Errorf("playlist not found")
	ErrPlaylistExists      = fmt.Errorf("playlist already exists")
	ErrInvalidPlaylistName = fmt.Errorf("invalid playlist name")
	ErrReservedPlaylist    = fmt.Errorf("playlist is reserved")
	ErrLinkedMember        = fmt.Errorf("song comes from a linked playlist")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
