// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package filterexpr implements the small expression language accepted
// inside a JSONPath filter selector's parentheses, `[?( ... )]`, and an
// expression selector's parentheses, `[( ... )]`.
//
// The grammar is deliberately small: a relative path rooted at the current
// node (`@`, optionally followed by `.name`, `.length`, or `[n]` steps),
// numeric/string literals, `+ - * /` arithmetic, and `== != < <= > >= =~
// !~` comparisons combined with `&& ||`. A compiled expression is either
// evaluated to a value (for an expression selector) or tested for a
// truthy/existent result (for a filter selector's predicate).
package filterexpr
