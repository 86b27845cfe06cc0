// Package process terminates the browser process tree left behind by PDF rendering.
package process
