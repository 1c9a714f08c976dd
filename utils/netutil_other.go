//go:build !unix

package utils

func bindHint(error) string { return "" }
