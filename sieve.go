// Package sieve provides the decision pipeline of a focused web crawler.
// Given a fetched page it decides whether the page carries enough
// information to keep, whether it nearly duplicates a page already kept,
// and which of its outbound links are worth visiting next.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, redis/).
package sieve
