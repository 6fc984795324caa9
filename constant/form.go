package constant

// InputKind enumerates the field kinds a form definition may declare.
type InputKind string

const (
	InputText     InputKind = "text"
	InputEmail    InputKind = "email"
	InputPassword InputKind = "password"
	InputNumber   InputKind = "number"
	InputSelect   InputKind = "select"
	InputCheckbox InputKind = "checkbox"
)

// Entity names used to tag business errors so callers can map a failure
// back to the offending relation.
const (
	EntityUser      = "User"
	EntityCategory  = "Category"
	EntityPlaceMark = "PlaceMark"
)
