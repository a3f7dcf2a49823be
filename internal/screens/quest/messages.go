package quest

import (
	"time"

	"github.com/abhisek/questisland/internal/ledger"
	"github.com/abhisek/questisland/internal/profile"
)

// clockTickMsg refreshes the elapsed time once a second.
type clockTickMsg time.Time

// completedMsg carries the saved result of a finished lesson.
type completedMsg struct {
	Profile *profile.Profile
	Outcome ledger.Outcome
	Err     error
}

// autosavedMsg is sent after the checkpoint taken between questions is
// stored.
type autosavedMsg struct {
	Profile *profile.Profile
	Err     error
}

// checkpointSavedMsg is sent after the quit checkpoint is stored.
type checkpointSavedMsg struct {
	Profile *profile.Profile
	Err     error
}
