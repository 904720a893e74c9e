// Package jpath evaluates JSONPath expressions against a dom.Value by
// driving a character-at-a-time state machine over the path text,
// rather than building and walking an intermediate parse tree: each
// selector a bracket or dot step describes is applied to the current
// node set as soon as its closing delimiter is seen, and the result
// becomes the node set the next step starts from.
package jpath
