// Package bridge finds owserver instances on the local network.
//
// owserver announces itself via DNS-SD as "_owserver._tcp". The Browser
// aggregates announcements per instance: an instance seen on several
// interfaces is reported once with the union of its addresses, and it is
// only reported as gone when its last address disappears.
package bridge
