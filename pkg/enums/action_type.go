package enums

import "fmt"

// ActionType classifies entries in the activity log.
type ActionType string

const (
	ActionTypeCreate      ActionType = "CREATE"
	ActionTypeUpdate      ActionType = "UPDATE"
	ActionTypeDelete      ActionType = "DELETE"
	ActionTypeStateChange ActionType = "STATE_CHANGE"
)

var validActionTypes = []ActionType{
	ActionTypeCreate,
	ActionTypeUpdate,
	ActionTypeDelete,
	ActionTypeStateChange,
}

// String implements fmt.Stringer.
func (a ActionType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ActionType.
func (a ActionType) IsValid() bool {
	for _, candidate := range validActionTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActionType converts raw input into an ActionType.
func ParseActionType(value string) (ActionType, error) {
	for _, candidate := range validActionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid action type %q", value)
}
