// Package status computes the keys under which a character's progress on a
// catalog item is stored, and knows which states each kind accepts.
//
// Keys are plain strings so the store stays a flat key/value table:
//
//	<Area>::<Item>                 quests
//	Mission!<Area>::<Item>         missions, normal mode
//	Mission_HM!<Area>::<Item>      missions, hard mode
//	Skill!<Area>::<Item>           skills
//	Vanquish!<Area>::<Item>        vanquish areas
//
// Names are used verbatim. The content parsers reject "::" and "!" in names,
// which is what keeps ParseKey unambiguous.
package status
