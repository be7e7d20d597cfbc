// Package discovery finds the devices on a 1-Wire bus and turns them into
// registry results.
//
// A scan runs in three stages:
//
//   - Traversal walks the bus depth-first from "/". Couplers (DS2409) are not
//     discovered themselves; their main and aux branches are walked instead.
//     Every other device is classified and kept in a map keyed by its id,
//     together with the ids of the sub-sensors it declares.
//   - Resolution folds declared sub-sensors into their owners in two passes.
//     The first pass handles everything except DS2438 (family "26") devices,
//     the second pass merges DS2438s and the sub-sensors they already own, so
//     a module made of several chips ends up as one item.
//   - Building finalizes the type of each remaining item and converts it into
//     a Result with the properties the registry needs.
//
// Failures never abort a scan. An unreadable branch, an unsupported device,
// a dangling association or an incomplete module is reported in the scan
// Report and the rest of the bus is discovered as usual.
//
// Scanner runs single scans. Service adds the per-bridge lifecycle (one scan
// at a time, removal of stale results) and Scheduler runs background
// discovery for several bridges.
package discovery
