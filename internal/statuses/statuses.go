package statuses

const (
	StatusWaitOpponent = "wait_opponent"
	StatusSwap2        = "swap2"
	StatusActive       = "active"
	StatusCompleted    = "completed"
	StatusAbandoned    = "abandoned"
)

const (
	ReportStatusOpen      = "open"
	ReportStatusReviewed  = "reviewed"
	ReportStatusDismissed = "dismissed"
	ReportStatusUpheld    = "upheld"
)

const (
	AppealStatusPending  = "pending"
	AppealStatusAccepted = "accepted"
	AppealStatusRejected = "rejected"
)
