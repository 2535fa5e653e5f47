package render

// inlineTags stay on their parent's line in pretty output.
var inlineTags = map[string]bool{
	"a":      true,
	"code":   true,
	"em":     true,
	"span":   true,
	"strong": true,
}

// flagAttrs are written as a bare name when true and left out when false.
var flagAttrs = map[string]bool{
	"async":    true,
	"defer":    true,
	"disabled": true,
	"hidden":   true,
}
