// contrastkit - accessible colour combinations
//
// contrastkit measures WCAG 2.1 and APCA contrast, finds accessible
// background/foreground pairs in a palette and derives borders and
// gradients that stay within it.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/contrastkit/internal/cli"
)

func main() {
	cli.Execute()
}
