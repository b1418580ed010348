package model

// Activity is the presentation shape of one extracurricular activity.
// MaxParticipants is advisory: it is displayed to students but signup
// does not enforce it as a hard cap.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Directory maps activity name to its record, keyed exactly as the name
// appears in URLs (case-sensitive, may contain spaces).
type Directory map[string]*Activity

type SignupResult struct {
	Message string `json:"message"`
}
