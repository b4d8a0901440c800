// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataframe

import (
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Frequency describes the sampling periodicity of a return series
type Frequency string

const (
	Daily        Frequency = "daily"
	Weekly       Frequency = "weekly"
	Monthly      Frequency = "monthly"
	Quarterly    Frequency = "quarterly"
	SemiAnnually Frequency = "semi-annually"
	Yearly       Frequency = "yearly"
)

// inferenceOrder is the canonical enumeration order; ties and threshold
// scans always resolve to the earliest entry
var inferenceOrder = []Frequency{Daily, Weekly, Monthly, Quarterly, SemiAnnually, Yearly}

// Scale returns the number of periods per year for the frequency
func (frequency Frequency) Scale() (int, error) {
	switch frequency {
	case Daily:
		return 252, nil
	case Weekly:
		return 52, nil
	case Monthly:
		return 12, nil
	case Quarterly:
		return 4, nil
	case SemiAnnually:
		return 6, nil
	case Yearly:
		return 1, nil
	}

	log.Error().Str("Frequency", string(frequency)).Msg("no annualization scale for frequency")
	return 0, ErrUnknownFrequency
}

// ParseFrequency converts a frequency label or one of its recognized
// abbreviations into a canonical Frequency. Matching is case-insensitive.
// Unrecognized labels return ErrUnknownFrequency; there is no default.
func ParseFrequency(label string) (Frequency, error) {
	switch strings.ToLower(label) {
	case "d", "day", "daily":
		return Daily, nil
	case "w", "week", "weekly":
		return Weekly, nil
	case "m", "month", "monthly":
		return Monthly, nil
	case "q", "quarter", "quarterly":
		return Quarterly, nil
	case "s", "semi-annual", "semi-annually":
		return SemiAnnually, nil
	case "y", "year", "yearly", "annual":
		return Yearly, nil
	}

	log.Error().Str("Label", label).Msg("unknown frequency label")
	return "", ErrUnknownFrequency
}

// InferFrequency determines the most likely sampling frequency of the given
// date index by voting on the day-count of each consecutive gap:
//
//	daily          1-5 days (weekends and holidays leave gaps)
//	weekly         7 days
//	monthly        28-31 days
//	quarterly      89-92 days
//	semi-annually  180-184 days
//	yearly         360-366 days
//
// With fewer than 30 observations the frequency with the most votes wins.
// Otherwise a frequency must account for more than 85% of the gaps; the
// supermajority tolerates holiday gaps in daily data. When no frequency
// clears the threshold ErrFrequencyNotInferable is returned.
//
// The index must be sorted ascending. Fewer than 2 observations produce no
// gaps and fail with ErrFrequencyNotInferable.
func InferFrequency(index []time.Time) (Frequency, error) {
	n := len(index)
	if n < 2 {
		return "", ErrFrequencyNotInferable
	}

	votes := make(map[Frequency]int, len(inferenceOrder))
	for ii := 1; ii < n; ii++ {
		days := int(math.Round(index[ii].Sub(index[ii-1]).Hours() / 24))
		switch {
		case days >= 1 && days <= 5:
			votes[Daily]++
		case days == 7:
			votes[Weekly]++
		case days >= 28 && days <= 31:
			votes[Monthly]++
		case days >= 89 && days <= 92:
			votes[Quarterly]++
		case days >= 180 && days <= 184:
			votes[SemiAnnually]++
		case days >= 360 && days <= 366:
			votes[Yearly]++
		}
	}

	if n < 30 {
		best := inferenceOrder[0]
		for _, frequency := range inferenceOrder[1:] {
			if votes[frequency] > votes[best] {
				best = frequency
			}
		}
		return best, nil
	}

	threshold := 0.85 * float64(n)
	for _, frequency := range inferenceOrder {
		if float64(votes[frequency]) > threshold {
			return frequency, nil
		}
	}

	return "", ErrFrequencyNotInferable
}
