// Package analyzer implements tyflow's flow-sensitive analysis over the
// JavaScript AST. It walks statements and expressions, tracks per-binding
// type state through a stack of control-flow scopes, and folds the possible
// states of conditionally- or repeatedly-executed code into canonical
// unions via the ty package. One Analyzer serves one pass over one program
// and shares that pass's arena; it reports imprecision as data (types and
// diagnostics), never as errors.
package analyzer
