// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/penny-vault/pv-perf/data"
	"github.com/penny-vault/pv-perf/dataframe"
)

// loadReturns reads a date-indexed CSV of returns (or prices when the prices
// flag is set) and optionally trims it to the begin/end range
func loadReturns(path string, prices bool, begin string, end string) *dataframe.DataFrame[time.Time] {
	fh, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("FileName", path).Msg("could not open data file")
	}
	defer fh.Close()

	df, err := data.FromCSV(fh)
	if err != nil {
		log.Fatal().Err(err).Str("FileName", path).Msg("could not parse data file")
	}

	if prices {
		df = data.PctChange(df)
	}

	return trimRange(df, begin, end)
}

func trimRange(df *dataframe.DataFrame[time.Time], begin string, end string) *dataframe.DataFrame[time.Time] {
	if begin == "" && end == "" {
		return df
	}

	beginDate := df.Start()
	endDate := df.End()

	var err error
	if begin != "" {
		if beginDate, err = time.Parse("2006-01-02", begin); err != nil {
			log.Fatal().Err(err).Str("Begin", begin).Msg("could not parse begin date")
		}
	}

	if end != "" {
		if endDate, err = time.Parse("2006-01-02", end); err != nil {
			log.Fatal().Err(err).Str("End", end).Msg("could not parse end date")
		}
	}

	return df.Trim(beginDate, endDate)
}

func parseFrequencyFlag(label string) dataframe.Frequency {
	if label == "" {
		return ""
	}

	frequency, err := dataframe.ParseFrequency(label)
	if err != nil {
		log.Fatal().Err(err).Str("Frequency", label).Msg("unrecognized frequency")
	}
	return frequency
}
