// Package core contains the domain events and decision results of the library:
// Books, members, and the loan lifecycle of a small public library.
//
// Events describe what happened in business terms (BookLent, BookReturned, MemberRegistered)
// and are produced by the pure Decide functions of the feature slices.
// Rejected requests are described by failure events, which report IsErrorEvent() == true.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
