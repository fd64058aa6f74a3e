// Package shell provides the infrastructure shared by the library feature slices:
// handler contracts, handler results, retry with exponential backoff, and the
// observability helpers used by the observable handler wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
