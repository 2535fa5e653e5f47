package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrOf creates an attribute with an arbitrary key.
func AttrOf(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute. Multiple classes are joined with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the inline style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// ARIA attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets aria-label.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Links and resources

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Defer marks a script as deferred.
func Defer() Attr { return attr("defer", true) }
