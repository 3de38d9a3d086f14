package auditlogs

const (
	EventTypeSubjectBlocked = "ratelimit.subject_blocked"
	EventTypeCleared        = "ratelimit.cleared"
)

const (
	CategoryAbuseProtection = "abuse_protection"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

const (
	TargetTypeSubject = "subject"
)
