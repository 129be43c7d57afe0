package board

// Event is one member of the closed set of interactions the controller
// reacts to.
type Event interface {
	isEvent()
}

// Loaded asks for a full fetch of the activity list. It fires once on
// bootstrap and again after every successful signup or removal.
type Loaded struct{}

// SubmitSignup carries the signup form fields.
type SubmitSignup struct {
	Activity string
	Email    string
}

// ClickDelete identifies the remove control the user activated.
type ClickDelete struct {
	Activity string
	Email    string
}

func (Loaded) isEvent()       {}
func (SubmitSignup) isEvent() {}
func (ClickDelete) isEvent()  {}
