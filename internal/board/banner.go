package board

// Style selects the banner presentation class.
type Style string

const (
	StyleSuccess Style = "success"
	StyleError   Style = "error"
)

// Banner is the transient status message shown after an action.
type Banner struct {
	Text    string
	Style   Style
	Visible bool
}
