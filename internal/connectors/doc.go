// Package connectors provides implementations of the FeedbackConnector
// interface for the four feedback platforms. Each connector knows how
// to fetch records from a specific platform API and persist them
// through its writer port.
package connectors
