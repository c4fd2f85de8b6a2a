// Package diag defines the diagnostic model shared by every compiler phase:
// severities, stable numeric codes, the user-facing error kinds
// (SyntaxError/TypeError/ReferenceError), the Bag accumulator, and the
// Reporter contract phases emit through. Phases never abort on user errors;
// they report and keep going.
package diag
