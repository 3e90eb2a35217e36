package shares

// AccessLevel is ordered: view < edit < admin < owner.
type AccessLevel string

const (
	AccessLevelView  AccessLevel = "view"
	AccessLevelEdit  AccessLevel = "edit"
	AccessLevelAdmin AccessLevel = "admin"
	AccessLevelOwner AccessLevel = "owner"
)

var accessLevelRank = map[AccessLevel]int{
	AccessLevelView:  1,
	AccessLevelEdit:  2,
	AccessLevelAdmin: 3,
	AccessLevelOwner: 4,
}

func (l AccessLevel) IsValid() bool {
	_, ok := accessLevelRank[l]
	return ok
}

// IsAssignable reports whether the level can be granted through a share.
// Ownership is never granted by sharing.
func (l AccessLevel) IsAssignable() bool {
	return l.IsValid() && l != AccessLevelOwner
}

func (l AccessLevel) AtLeast(other AccessLevel) bool {
	return accessLevelRank[l] >= accessLevelRank[other]
}

type ShareStatus string

const (
	ShareStatusPending  ShareStatus = "pending"
	ShareStatusAccepted ShareStatus = "accepted"
	ShareStatusRejected ShareStatus = "rejected"
)

func (s ShareStatus) IsValid() bool {
	switch s {
	case ShareStatusPending, ShareStatusAccepted, ShareStatusRejected:
		return true
	}
	return false
}

type ResourceKind string

const (
	ResourceKindPage      ResourceKind = "page"
	ResourceKindWorkspace ResourceKind = "workspace"
)
