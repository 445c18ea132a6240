// Package playlist drives an audio handle through an ordered list of tracks.
//
// A [Player] owns one [Audio] handle, passed at construction, and keeps the
// current track, the displayed title and artist and the play/pause label.
// Index arithmetic wraps in both directions, and the end of a track
// advances to the next one.
//
// Playback can be refused by the handle (a browser autoplay policy, a
// missing device). A refused Play is logged and leaves the player paused
// with the "Play" label; it is never returned as an error from navigation.
//
// Lifecycle follows the owning view: [Player.Attach] loads track 0 without
// playing, [Player.Detach] pauses and clears the source.
package playlist
