//go:build !unix

package organizer

func isEXDEV(error) bool { return false }
