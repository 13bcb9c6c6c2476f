// Package parser turns raw scheme text into typed statements.
//
// Parsing happens in two independent steps:
//
//  1. Split breaks the source into logical statements, each tagged with its
//     originating line number. It handles comment lines, `;` separators and
//     `&` multi-line continuations.
//  2. ParseStatement dispatches on the first character (the sigil) of one
//     statement and returns a tagged variant (ClassStmt, RuleStmt, ...).
//
// Neither step knows about classes or the pattern engine; resolution and
// compilation live in pkg/class and pkg/rule.
package parser
