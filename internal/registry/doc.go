// Package registry resolves Home Assistant entities into areas.
//
// Home Assistant assigns areas through two registries: an entity registry
// entry may carry its own area_id, and otherwise the entity inherits the
// area of its device. Graph indexes both paths from fresh registry
// snapshots; Resolver joins the graph with live states to answer
// area-membership queries, list areas and build an installation overview.
//
// All upstream fetches degrade gracefully to empty sets, so a broken
// websocket or REST endpoint narrows results instead of failing requests.
package registry
