// Package findbooks implements the catalog lookups of the library.
//
// A Query selects books by id, by a keyword matched against title, author and ISBN,
// by genre, by author, or returns the whole catalog. All text matching ignores case.
package findbooks
