// Package scraper provides HTTP fetching and HTML table extraction for fbref.com team pages.
//
// The scraper package fetches a team's season page, selects the scores and fixtures
// table by a text pattern, and normalizes each row into match records. Every cell keeps
// both its display text and the first link it contains, so the match report link of the
// next fixture is read from the same row that describes it. Tables that fbref ships
// inside HTML comments are parsed as well.
package scraper
