// Package content defines the tracked content catalog: quests, missions,
// skills, and vanquish areas, plus the reward encoding quests carry.
//
// Every entity is built once from a raw YAML record and is read-only
// afterwards. Parsers never terminate the process; a malformed record is
// reported as a *ValidationError naming the area, item, and field, and the
// loader decides what to do with it.
package content
