// Package main provides the CLI entrypoint for dtomap-gen.
//
// dtomap-gen finds structs marked with //dtomap:register and writes, per
// package, a dtomap_gen.go file registering them in dto.Default with their
// accessors, mutators and element types bound at compile time.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
