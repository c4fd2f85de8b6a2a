// Package types implements the per-compilation type registry: primitive
// singletons, function and object types, user records, generics with
// substitution-based instantiation, unions, and forward references resolved
// in place by the checker. Identity is by TypeID; generic instances and
// unions are deduplicated structurally at construction. The operator tables
// that drive expression typing also live here.
package types
