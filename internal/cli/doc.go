// Package cli implements the command-line interface for fixture-bot.
//
// The cli package provides the Cobra-based CLI: run executes one pre-match report
// cycle, serve keeps the cycle on a cron schedule until interrupted, and preview prints
// the messages the next cycle would publish (text/JSON) without posting anything.
// It coordinates the config, scraper, report, notifier, and scheduler packages.
package cli
