// Package diagnostic provides structured errors and warnings produced while
// compiling DTO schemas and analyzing DTO packages for code generation.
package diagnostic
