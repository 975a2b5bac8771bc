//go:build !unix

package fsutil

import "os"

// Advisory locking is unavailable; atomic rename still keeps readers safe.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }
