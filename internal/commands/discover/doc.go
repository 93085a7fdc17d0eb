// Package discover implements the "discover" command, which lists the
// versioned packages and manifest files found in the working directory and
// the sync targets they suggest.
package discover
