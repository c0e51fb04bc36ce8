// Package match provides the fixture, result, and head-to-head records scraped from
// fbref.com and the pure functions that derive report facts from them.
//
// The match package selects the next unplayed fixture, computes the primary team's
// recent form, and filters and classifies historical meetings with the next opponent.
// Every function here is deterministic: the same records and reference time always
// produce the same output.
package match
