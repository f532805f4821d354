// Package textutil cleans user-supplied names before they become part of an
// output file path.
package textutil
