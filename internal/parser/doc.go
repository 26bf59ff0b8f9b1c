// Package parser implements a recursive-descent/Pratt parser that turns a
// token stream from internal/lexer into an internal/ast tree.
//
// Key patterns:
//   - TokenCursor: an immutable cursor over the token stream with arbitrary
//     lookahead and Mark/ResetTo backtracking.
//   - Pratt parsing: prefixParseFns/infixParseFns keyed by token type, with
//     precedence climbing for expressions.
//   - Statement terminators: the first terminator style a file uses (newline
//     or semicolon) is latched; a later statement ending the other way
//     produces a warning instead of a hard error, unless disabled.
//   - Generic argument lists are disambiguated from a pair of less-than /
//     greater-than comparisons using token.Token.SpaceBefore.
package parser
