// Package pattern defines the declarative pattern tree for pinfield.
// A pattern is an immutable tree of kind-tagged nodes built through a
// Session, which tracks which nodes are still unconsumed roots so that
// scripts need no explicit export statement.
package pattern
