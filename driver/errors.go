package driver

import "errors"

// ErrAlreadyResumed is returned by Resume when the driver is not
// currently paused for a script — either Resume was already called once
// for this pause, or no script pause is outstanding. Calling Resume
// twice for one pause is a contract violation by the embedding code
// (e.g. a tree builder executing a script asynchronously and calling
// back in twice), not a recoverable parse condition.
var ErrAlreadyResumed = errors.New("driver: already resumed, or not currently paused")

// ErrNotPaused is returned by InjectWrite when document.write-style content is
// injected while the driver is not suspended for script execution.
var ErrNotPaused = errors.New("driver: cannot inject HTML while not paused")
