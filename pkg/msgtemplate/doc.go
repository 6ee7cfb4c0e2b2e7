/*
Package msgtemplate parses structured-logging message templates.

# Overview

A message template is literal text with named placeholders:

	User {UserId} logged in from {@Client}
	Request took {Elapsed:F2} ms
	Hello {{.Name}}
	Running on ${ServiceName}

Parse splits a template into an ordered sequence of nodes. Each node is
either a Literal (plain text) or a Property (a placeholder with an optional
hint, name and format spec). Renderers and log encoders consume this
sequence; see the render subpackage for a renderer.

# Placeholder Forms

Three forms are recognised:

	{Name}  {@Name}  {$Name}  {Name:Format}   plain
	{{.Name}}  {{Name}}                       go-style
	${Name}  ${Name:Format}                   builtin

Hints (@ capture, $ stringify) exist only in the plain form. The format spec
is everything after ':' up to the closing '}', taken verbatim, so
"{Time:HH:mm:ss}" has the format "HH:mm:ss".

Names are identifiers ([A-Za-z_][A-Za-z0-9_]*), dotted names (http.method)
or numeric indexes (0, 12). A digit run followed by '.' is never a name, so
"{0.method}" is literal text.

# Error Handling

Parse never fails. Anything that does not form a complete property is kept
as literal text: "{Name" is a single Literal, as are "{ x }" and "{@$User}".
A failed attempt keeps only its opener as literal and continues right after
it; parsing is a single left-to-right pass, linear in the input length.

# Dialects

DialectPermissive (the default) accepts empty bodies: {}, ${} and {{.}}
parse as properties with no name. DialectStrict requires a name, turns
"${}" into literal text and only closes a property on the line it was
opened on:

	p := msgtemplate.NewParser(msgtemplate.WithDialect(msgtemplate.DialectStrict))
	t := p.Parse("cost: ${}")

# Round Trip

Concatenating Source() of every node reproduces the input exactly:

	t := msgtemplate.Parse(text)
	t.String() == text // always true

# Thread Safety

Parser and Template are immutable and safe for concurrent use. The package
keeps no mutable global state.
*/
package msgtemplate
