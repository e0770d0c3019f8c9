// Inkform - structural analysis and palette reduction for vector logos
//
// Inkform analyses SVG documents and derives reduced-colour versions
// for limited-palette reproduction.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/inkform/internal/cli"
)

func main() {
	cli.Execute()
}
