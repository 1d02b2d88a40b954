// Package model contains the Conference aggregate, its inbound and outbound shapes,
// and the read-only Keynote record. No persistence or transport concerns here.
package model
