// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import "strings"

// LineSplitter reassembles lines from output chunks.
// Both '\n' and '\r' terminate a line: the download tool redraws its progress
// line in place with carriage returns. Empty lines are dropped.
//
// A LineSplitter is not safe for concurrent use; each output channel owns one.
type LineSplitter struct {
	partial strings.Builder
}

// Write consumes chunk and returns the lines it completed, in order.
func (s *LineSplitter) Write(chunk string) []string {
	var lines []string

	for len(chunk) > 0 {
		i := strings.IndexAny(chunk, "\r\n")
		if i < 0 {
			s.partial.WriteString(chunk)
			break
		}

		s.partial.WriteString(chunk[:i])

		if s.partial.Len() > 0 {
			lines = append(lines, s.partial.String())
			s.partial.Reset()
		}

		chunk = chunk[i+1:]
	}

	return lines
}

// Partial returns the text received since the last line terminator.
func (s *LineSplitter) Partial() string {
	return s.partial.String()
}

// Flush returns and clears the pending partial line.
// Call it once the stream has ended.
func (s *LineSplitter) Flush() string {
	line := s.partial.String()
	s.partial.Reset()

	return line
}
