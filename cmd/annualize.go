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
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pv-perf/common"
	"github.com/penny-vault/pv-perf/data"
	"github.com/penny-vault/pv-perf/dataframe"
	"github.com/penny-vault/pv-perf/perf"
)

var (
	annualizeFreq       string
	annualizeArithmetic bool
	annualizePrices     bool
	annualizeSample     bool
	annualizeBegin      string
	annualizeEnd        string
)

func init() {
	annualizeCmd.Flags().StringVarP(&annualizeFreq, "frequency", "f", "", "frequency of the data: daily, weekly, monthly, quarterly, semi-annually or yearly (default: infer from dates)")
	annualizeCmd.Flags().BoolVar(&annualizeArithmetic, "arithmetic", false, "use arithmetic annualization, mean(r) * scale, instead of geometric")
	annualizeCmd.Flags().BoolVar(&annualizePrices, "prices", false, "input holds prices; convert to returns first")
	annualizeCmd.Flags().BoolVar(&annualizeSample, "sample", false, "use the bundled sample ETF dataset instead of a file")
	annualizeCmd.Flags().StringVar(&annualizeBegin, "begin", "", "drop observations before this date (YYYY-MM-DD)")
	annualizeCmd.Flags().StringVar(&annualizeEnd, "end", "", "drop observations after this date (YYYY-MM-DD)")

	rootCmd.AddCommand(annualizeCmd)
}

var annualizeCmd = &cobra.Command{
	Use:   "annualize [returns csv]",
	Short: "calculate the annualized return of each column in a returns file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		var returns *dataframe.DataFrame[time.Time]
		switch {
		case annualizeSample:
			var err error
			if returns, err = data.LoadETFReturns(); err != nil {
				log.Fatal().Err(err).Msg("could not load sample dataset")
			}
			returns = trimRange(returns, annualizeBegin, annualizeEnd)
		case len(args) == 1:
			returns = loadReturns(args[0], annualizePrices, annualizeBegin, annualizeEnd)
		default:
			log.Fatal().Msg("either a returns csv or --sample is required")
		}

		annualized, err := perf.AnnualizedReturns(returns, parseFrequencyFlag(annualizeFreq), !annualizeArithmetic)
		if err != nil {
			log.Fatal().Err(err).Msg("could not annualize returns")
		}

		res := &dataframe.DataFrame[string]{Index: returns.ColNames}
		res.Insert("AnnualizedReturn", annualized)

		fmt.Println(res.Table())
	},
}
