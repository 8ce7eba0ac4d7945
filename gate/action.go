package gate

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionView      Action = "view"
	ActionList      Action = "list"
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
)

// IsRead reports whether the action only reads state.
func (a Action) IsRead() bool {
	return a == ActionView || a == ActionList
}
