// Package player implements the audio side of the music player.
//
// [AudioSink] and [EqualizerSink] are the contracts the controller drives. [Speaker] implements both
// with beep when the build has audio support; [Silent] implements both without output.
//
// [Equalizer] and [Volume] hold the user-facing state (presets, band gains, mute) and push it to a sink.
package player
