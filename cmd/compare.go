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
	"github.com/penny-vault/pv-perf/dataframe"
	"github.com/penny-vault/pv-perf/perf"
)

var (
	compareFreq       string
	compareArithmetic bool
	comparePrices     bool
	compareBegin      string
	compareEnd        string
	assetPrefix       string
	benchmarkPrefix   string
)

func init() {
	compareCmd.PersistentFlags().StringVarP(&compareFreq, "frequency", "f", "", "frequency of the data: daily, weekly, monthly, quarterly, semi-annually or yearly (default: reconcile from both inputs)")
	compareCmd.PersistentFlags().BoolVar(&compareArithmetic, "arithmetic", false, "use arithmetic formulas instead of geometric")
	compareCmd.PersistentFlags().BoolVar(&comparePrices, "prices", false, "inputs hold prices; convert to returns first")
	compareCmd.PersistentFlags().StringVar(&compareBegin, "begin", "", "drop observations before this date (YYYY-MM-DD)")
	compareCmd.PersistentFlags().StringVar(&compareEnd, "end", "", "drop observations after this date (YYYY-MM-DD)")
	compareCmd.PersistentFlags().StringVar(&assetPrefix, "asset-prefix", "AST", "name prefix for unnamed asset columns")
	compareCmd.PersistentFlags().StringVar(&benchmarkPrefix, "benchmark-prefix", "BMK", "name prefix for unnamed benchmark columns")

	compareCmd.AddCommand(premiumCmd)
	compareCmd.AddCommand(excessCmd)
	compareCmd.AddCommand(relativeCmd)
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "compare asset returns against benchmark returns",
}

var premiumCmd = &cobra.Command{
	Use:   "premium <asset csv> <benchmark csv>",
	Short: "annualized asset return minus annualized benchmark return for every column pair",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		ra, rb := loadComparison(args)

		premium, err := perf.ActivePremium(ra, rb, parseFrequencyFlag(compareFreq), !compareArithmetic, comparePrefixes())
		if err != nil {
			log.Fatal().Err(err).Msg("could not compute active premium")
		}

		fmt.Println(premium.Table())
	},
}

var excessCmd = &cobra.Command{
	Use:   "excess <asset csv> <benchmark csv>",
	Short: "annualized excess return of the assets over the benchmark",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		ra, rb := loadComparison(args)

		excess, err := perf.ExcessReturns(ra, rb, parseFrequencyFlag(compareFreq), !compareArithmetic)
		if err != nil {
			log.Fatal().Err(err).Msg("could not compute excess returns")
		}

		labels := ra.ColNames
		if len(excess) != len(labels) {
			labels = rb.ColNames
		}

		res := &dataframe.DataFrame[string]{Index: labels}
		res.Insert("ExcessReturn", excess)

		fmt.Println(res.Table())
	},
}

var relativeCmd = &cobra.Command{
	Use:   "relative <asset csv> <benchmark csv>",
	Short: "ratio of cumulative compounded growth for every column pair through time",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		ra, rb := loadComparison(args)

		relative, err := perf.RelativeReturns(ra, rb, comparePrefixes())
		if err != nil {
			log.Fatal().Err(err).Msg("could not compute relative returns")
		}

		fmt.Println(relative.Table())
	},
}

func loadComparison(args []string) (*dataframe.DataFrame[time.Time], *dataframe.DataFrame[time.Time]) {
	ra := loadReturns(args[0], comparePrices, compareBegin, compareEnd)
	rb := loadReturns(args[1], comparePrices, compareBegin, compareEnd)
	return ra, rb
}

func comparePrefixes() perf.Prefixes {
	return perf.Prefixes{Asset: assetPrefix, Benchmark: benchmarkPrefix}
}
