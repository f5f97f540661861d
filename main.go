// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/mrovere/gsepod/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
