// Package compat decides, for one (value, declared type) pair, whether the
// assignment is provably safe, compatible only at the erased level, or
// provably impossible.
package compat
