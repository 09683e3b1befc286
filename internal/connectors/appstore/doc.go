// Package appstore scrapes recent App Store customer reviews through
// the public iTunes RSS feed into the App Store source record store.
// Each scrape replaces the stored reviews wholesale.
package appstore
