package payment

// Status is the backend-owned lifecycle state of a transaction.
type Status string

const (
	StatusInitialized Status = "initialized"
	StatusPending     Status = "pending"
	StatusAuthorized  Status = "authorized"
	StatusSettled     Status = "settled"
	StatusCanceled    Status = "canceled"
	StatusFailed      Status = "failed"
)

const neutralBadgeClass = "bg-gray-100 text-gray-600"

// Badge describes how a status is displayed.
type Badge struct {
	Label string
	Class string
}

// BadgeFor maps every status to a badge. Values outside the enumeration get
// the neutral style and keep their raw text as the label.
func BadgeFor(s Status) Badge {
	switch s {
	case StatusInitialized:
		return Badge{Label: string(s), Class: "bg-blue-100 text-blue-700"}
	case StatusPending:
		return Badge{Label: string(s), Class: "bg-yellow-100 text-yellow-700"}
	case StatusAuthorized:
		return Badge{Label: string(s), Class: "bg-indigo-100 text-indigo-700"}
	case StatusSettled:
		return Badge{Label: string(s), Class: "bg-green-100 text-green-700"}
	case StatusCanceled:
		return Badge{Label: string(s), Class: neutralBadgeClass}
	case StatusFailed:
		return Badge{Label: string(s), Class: "bg-red-100 text-red-700"}
	default:
		return Badge{Label: string(s), Class: neutralBadgeClass}
	}
}

// Settling reports whether the provider may still move the transaction
// forward. The webhook can land after the browser returns, so a success
// page can legitimately show one of these.
func (s Status) Settling() bool {
	return s == StatusInitialized || s == StatusPending
}
