//go:build windows

package main

import "os"

// Windows has no termios; assume the standard streams are consoles.
func isTerminal(_ *os.File) bool { return true }
