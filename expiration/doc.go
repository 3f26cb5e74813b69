// Package expiration provides policies for controlling entry expiration behavior.
//
// This package defines the Policy interface and several implementations that
// determine when stored entries should be considered expired. These policies
// are consumed by the expiring map's lazy expiration checks to customize when
// an accessed entry is treated as stale.
package expiration
