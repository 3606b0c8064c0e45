package timer

import "github.com/ayoisaiah/tomato/internal/apperr"

var (
	errInvalidSoundFormat = &apperr.Error{
		Message: "sound file must be in mp3, ogg, flac, or wav format",
	}

	errSoundNotFound = &apperr.Error{
		Message: "the specified sound does not exist in the sounds directory",
	}
)
