package fragment

// Step is one named rewrite of an article body.
type Step struct {
	Name  string
	Apply func(string) string
}

// Steps returns the render pipeline in the order it must run. The subhead
// goes first because the page shows it separately; images go last so the
// anchors they gain are never inspected by the paragraph rewrites.
func Steps() []Step {
	return []Step{
		{Name: "strip_subhead", Apply: StripFirstSubhead},
		{Name: "italicize_origin_line", Apply: ItalicizeOriginLine},
		{Name: "bold_byline", Apply: BoldByline},
		{Name: "linkify_images", Apply: LinkifyImages},
	}
}

// Render runs every step of the pipeline over body.
func Render(body string) string {
	for _, st := range Steps() {
		body = st.Apply(body)
	}
	return body
}
