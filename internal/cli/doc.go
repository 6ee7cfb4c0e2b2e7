// Package cli handles command-line argument parsing for mtparse.
//
// Its responsibilities are to define flags, merge them over an optional
// settings file and validate the result into an Options value. It does not
// parse templates itself.
package cli
