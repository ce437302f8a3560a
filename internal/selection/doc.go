// Package selection resolves which item a command operates on.
//
// Items come from a caller supplied list function and are identified by a
// primary key read from their JSON form. Users may refer to an item by id or
// by its 1-based position in the list sorted by the configured sort key, the
// same order the list table is printed in.
//
// Selection is lazy: when the id is already known, for example from a command
// line argument, the list is never fetched. An empty list prints a message and
// returns ErrNoItems, which commands treat as a successful no-op.
package selection
