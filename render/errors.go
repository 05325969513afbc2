package render

import "fmt"

// UndefinedStyleError reports an inline style token that no known
// property recognizes. Breadcrumb locates the offending block in the
// tree so the caller can find the bad declaration.
type UndefinedStyleError struct {
	Tag        string
	Breadcrumb string
}

func (e *UndefinedStyleError) Error() string {
	return fmt.Sprintf("render: undefined style %q on %s", e.Tag, e.Breadcrumb)
}
