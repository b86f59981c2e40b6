package cluster

// Status is the membership lifecycle state of a node.
type Status int

const (
	StatusJoining Status = iota + 1
	StatusUp
	StatusLeaving
	StatusExiting
	StatusDown
	StatusRemoved
)

func (s Status) String() string {
	switch s {
	case StatusJoining:
		return "Joining"
	case StatusUp:
		return "Up"
	case StatusLeaving:
		return "Leaving"
	case StatusExiting:
		return "Exiting"
	case StatusDown:
		return "Down"
	case StatusRemoved:
		return "Removed"
	default:
		return ""
	}
}
