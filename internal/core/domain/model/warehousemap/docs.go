// Package warehousemap contains the spatial floor-plan aggregate.
//
// A warehouse map is a four-level hierarchy: the Map owns Zones, a Zone owns
// Aisles, an Aisle owns Racks, and a Rack owns MapBins. Only bins carry (x,y)
// coordinates; the intermediate levels group and order them for display.
//
// A MapBin is a spatial location. It is distinct from an inventory storage
// bin, which tracks stock quantity; a map bin may optionally link to one.
//
// All structural changes go through the Map aggregate root, which keeps sibling
// codes unique and applies removals as cascades: deleting a node removes its
// whole subtree.
package warehousemap
