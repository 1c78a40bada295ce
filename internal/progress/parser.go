// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"regexp"
	"strconv"
)

// Tag is the literal that opens every progress line.
const Tag = "[download]"

// lineRe matches "[download] <pct>% of <~?size> at <speed> ETA <eta>".
// Speed and ETA may contain spaces ("Unknown speed", "Unknown ETA").
var lineRe = regexp.MustCompile(
	`^\s*\[download\]\s+([0-9]+(?:\.[0-9]+)?)%\s+of\s+~?\s*(\S+)\s+at\s+(.+?)\s+ETA\s+(.+?)\s*$`,
)

// Record is the progress information carried by one line.
type Record struct {
	Percent      float64 `json:"percent"`
	TotalSize    string  `json:"totalSize"`
	CurrentSpeed string  `json:"currentSpeed"`
	ETA          string  `json:"eta"`
}

// Parse returns the progress carried by line.
// The boolean is false when line is not a progress line, which is the common case.
func Parse(line string) (Record, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}

	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil || pct > 100 {
		return Record{}, false
	}

	return Record{
		Percent:      pct,
		TotalSize:    m[2],
		CurrentSpeed: m[3],
		ETA:          m[4],
	}, true
}
