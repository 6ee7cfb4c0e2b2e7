// Package cache memoizes parsed message templates.
//
// Logging call sites reuse a small set of template strings, so parsing each
// distinct text once and sharing the immutable *msgtemplate.Template is the
// common pattern. A Cache is an ordinary value: create one per parser
// configuration and pass it where it is needed. There is no package-level
// cache.
//
// # Basic Usage
//
//	c := cache.New(msgtemplate.NewParser())
//	t := c.Parse(ctx, "User {UserId} logged in")
//	t2 := c.Parse(ctx, "User {UserId} logged in")
//	// t == t2
//
// # Bounding Memory
//
// WithMaxEntries caps the number of stored templates. Once the cap is
// reached, new texts are still parsed and returned but not stored:
//
//	c := cache.New(p, cache.WithMaxEntries(1024))
//
// # Thread Safety
//
// All Cache methods are safe for concurrent use. Parse runs the parser at
// most once per text, even under concurrent access.
package cache
