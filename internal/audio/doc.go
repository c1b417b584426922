// Package audio plays the chime that accompanies a message. It uses the beep
// library to decode WAV, OGG and MP3 files and honours the sender's
// sound-file and suppress-sound hints.
package audio
