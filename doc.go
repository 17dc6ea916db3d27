// Package mathexpr implements a float64 calculator for arithmetic expressions.
//
// Expressions contain numbers, the operators + - * /, and parentheses. A
// number or closing bracket directly followed by an opening bracket is
// multiplied, as in "2(3+4)" or "(1+2)(3+4)", and a leading minus negates, as
// in "-3+5" or "(-3+4)". The whole expression may also start with a plus. Spaces and underscores are ignored everywhere, so
// "1 000_000" is one million. Operators of the same precedence associate to
// the left: "8/2/2" is 2.
//
// Evaluation happens in stages: Tokenize, Validate, Rewrite (which inserts the
// implicit operators and zeros), then one of two backends. The default Tree
// backend builds an expression tree for each bracket group in a single pass
// and evaluates it recursively when it is small or with an explicit work list
// when it is large. The Flat backend folds operators in place over the token
// buffer. Both give bit-identical results.
//
// Division by zero is not an error; it gives an infinity or NaN.
package mathexpr
