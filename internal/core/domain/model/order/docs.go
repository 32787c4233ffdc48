// Package order contains the Order aggregate for warehouse accessory dispatch.
//
// An Order is one logical dispatch request keyed by a unique business order
// number. It owns a collection of AccessoryLine children (type + quantity)
// and a two-stage lifecycle modeled by Status: Open at creation, Closed as
// the terminal state, with the accessories-added flag recorded at close time.
//
// Repeat submissions under an existing order number append lines to the
// existing aggregate rather than creating a duplicate order; lines sharing an
// accessory type remain separate entries and are never summed.
package order
