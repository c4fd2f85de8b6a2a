// Package symbols stores the scope tree and symbol bindings the checker
// builds while walking a file: one scope per body, parent links to the root,
// and per-scope name indexes. Redeclaration policy lives in the checker; the
// table only reports collisions.
package symbols
