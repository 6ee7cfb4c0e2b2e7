/*
Package render substitutes values into parsed message templates.

# Overview

render is a consumer of msgtemplate: it walks a parsed Template and writes
literal text verbatim and each property as its bound value.

	out := render.RenderString("User {UserId} from {@Client}", map[string]any{
	    "UserId": 42,
	    "Client": struct{ IP string }{"10.0.0.1"},
	})
	// out: "User 42 from {IP:10.0.0.1}"

# Name Resolution

A property's full name is looked up in vars first, so "{http.method}"
matches the key "http.method". Dotted names then walk nested maps:

	render.RenderString("{req.id}", map[string]any{
	    "req": map[string]any{"id": "abc"},
	})
	// "abc"

Positional properties such as "{0}" use the digit string as the key.

# Hints and Formats

The capture hint (@) renders with %+v and the stringify hint ($) renders a
quoted string. Format specs are passed unmodified to a FormatFunc set with
WithFormatter; without one they are ignored.

# Missing Properties

By default unbound properties are written as they appeared in the template:

	render.RenderString("Hello {missing}", nil)
	// "Hello {missing}"

Configure behavior with options:

	r := render.NewRenderer(render.WithMissingAction(render.MissingError))
	_, err := r.RenderString("Hello {missing}", nil)
	// err: "undefined property: missing"

# Thread Safety

Renderer is safe for concurrent use after construction.
Package-level functions use a shared default renderer.
*/
package render
