// Package googleplay scrapes recent Google Play reviews into the
// Google Play source record store.
//
// Play has no public reviews API; the connector speaks the frontend's
// batchexecute RPC endpoint, whose responses are positional JSON
// arrays behind an anti-JSON prefix line.
package googleplay
