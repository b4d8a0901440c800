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

// Package data converts already-downloaded data snapshots into the
// timestamp-indexed tables the perf package consumes. The computation core
// never touches raw bytes or file paths; this package is that boundary.
package data

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/penny-vault/pv-perf/dataframe"
)

// FromCSV parses a date-indexed CSV table into a DataFrame. The first row
// must be a header and the first column must hold dates formatted as
// YYYY-MM-DD; remaining columns are numeric. Header names and cells are
// whitespace-trimmed and an empty cell becomes NaN. Duplicate dates are
// rejected and rows are sorted by date after parsing.
func FromCSV(r io.Reader) (*dataframe.DataFrame[time.Time], error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		log.Error().Err(err).Msg("could not read csv data")
		return nil, err
	}

	if len(rows) < 2 || len(rows[0]) < 2 {
		return nil, ErrEmptyCSV
	}

	header := rows[0]
	colNames := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		colNames = append(colNames, strings.TrimSpace(name))
	}

	df := &dataframe.DataFrame[time.Time]{
		Index:    make([]time.Time, 0, len(rows)-1),
		ColNames: colNames,
		Vals:     make([][]float64, len(colNames)),
	}

	seen := make(map[time.Time]bool, len(rows)-1)
	for rowNum, row := range rows[1:] {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			log.Error().Err(err).Int("Row", rowNum+1).Str("Value", row[0]).Msg("could not parse date")
			return nil, ErrInvalidDate
		}

		// each date identifies one row; downstream joins key on the date
		if seen[date] {
			log.Error().Int("Row", rowNum+1).Str("Value", row[0]).Msg("duplicate date")
			return nil, ErrDuplicateDate
		}
		seen[date] = true

		df.Index = append(df.Index, date)
		for colIdx := range colNames {
			cell := strings.TrimSpace(row[colIdx+1])
			if cell == "" {
				df.Vals[colIdx] = append(df.Vals[colIdx], math.NaN())
				continue
			}

			val, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				log.Error().Err(err).Int("Row", rowNum+1).Str("Value", cell).Msg("could not parse value")
				return nil, ErrInvalidValue
			}
			df.Vals[colIdx] = append(df.Vals[colIdx], val)
		}
	}

	return df.SortByIndex(), nil
}

// PctChange converts a price table into simple period returns,
// p[k]/p[k-1] - 1; the first row is consumed by the differencing and the
// result is one row shorter than the input
func PctChange(prices *dataframe.DataFrame[time.Time]) *dataframe.DataFrame[time.Time] {
	if prices.Len() < 2 {
		return &dataframe.DataFrame[time.Time]{ColNames: prices.ColNames, Vals: make([][]float64, prices.ColCount())}
	}

	returns := &dataframe.DataFrame[time.Time]{
		Index:    prices.Index[1:],
		ColNames: prices.ColNames,
		Vals:     make([][]float64, prices.ColCount()),
	}

	for colIdx, col := range prices.Vals {
		rets := make([]float64, len(col)-1)
		for rowIdx := 1; rowIdx < len(col); rowIdx++ {
			rets[rowIdx-1] = col[rowIdx]/col[rowIdx-1] - 1
		}
		returns.Vals[colIdx] = rets
	}

	return returns
}
