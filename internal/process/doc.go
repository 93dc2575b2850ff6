// Package process cleans up headless browser process trees left behind by
// the launcher when a conversion is interrupted.
package process
