package web

// htmlRoot is the style scope of a rendered page: the dark class on <html>.
type htmlRoot struct {
	dark bool
}

func (r *htmlRoot) SetDark(dark bool) { r.dark = dark }

// Class returns the class attribute for the <html> element.
func (r *htmlRoot) Class() string {
	if r.dark {
		return "dark"
	}
	return ""
}
