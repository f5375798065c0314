//go:build !unix

package main

import "os"

// redirectStdIO fallback for platforms without Dup2. Replacing the os.Stdout
// and os.Stderr values catches normal prints but not runtime-level stderr
// output such as panics.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
