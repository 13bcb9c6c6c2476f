// Package class resolves named character classes into flat pattern fragments.
//
// Classes are collected in definition order with a Builder, then frozen into an
// immutable Table. Freezing resolves every class eagerly, expanding nested
// `<Name>` references depth-first and rejecting reference cycles. A frozen
// Table is safe for concurrent use.
//
// Class references share angle brackets with the pattern engine's own syntax.
// The following are passed through untouched:
//
//	(?<=x) (?<!x)          lookbehind
//	(?<name>x) (?P<name>x) named groups
//	\k<name>               named back-reference
//	(?>x)                  atomic group
//	\< \>                  escaped brackets
//	[<>]                   brackets inside a character set
//
// Every substitution is wrapped as a non-capturing group `(?:value)`, so
// splicing a class never renumbers capture groups around it.
package class
