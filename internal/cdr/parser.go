// Package cdr extracts call-quality records from a 3CX-style CDR log file
// and pushes an aggregated MOS metric per tail pass.
package cdr

import (
	"regexp"
	"strconv"
)

// recordRegex matches the trailing quality fields of a CDR line. The 3CX CDR
// format is long and comma separated; only the last group is interesting:
// average jitter, average packet loss, actual MOS, and the call ID, anchored
// to end of line. Lines with any other shape are skipped.
var recordRegex = regexp.MustCompile(
	`.*,` +
		`(?P<JitterAvg>[\d.]+),` +
		`(?P<PacketLossAvg>[\d.]+),` +
		`(?P<MOS>[\d.]+),` +
		`(?P<CallID>[\w-]+),` +
		`$`,
)

// Record is one parsed CDR line. It lives only long enough to be folded into
// a tail pass's aggregate.
type Record struct {
	Jitter     float64
	PacketLoss float64
	MOS        float64
	CallID     string
}

// ParseLine extracts a Record from one CDR line. The second return value is
// false when the line does not match the expected record shape; such lines
// are not an error, just unknown to this parser.
func ParseLine(line string) (Record, bool) {
	m := recordRegex.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}

	jitter, err := strconv.ParseFloat(m[recordRegex.SubexpIndex("JitterAvg")], 64)
	if err != nil {
		return Record{}, false
	}
	loss, err := strconv.ParseFloat(m[recordRegex.SubexpIndex("PacketLossAvg")], 64)
	if err != nil {
		return Record{}, false
	}
	mos, err := strconv.ParseFloat(m[recordRegex.SubexpIndex("MOS")], 64)
	if err != nil {
		return Record{}, false
	}

	return Record{
		Jitter:     jitter,
		PacketLoss: loss,
		MOS:        mos,
		CallID:     m[recordRegex.SubexpIndex("CallID")],
	}, true
}
