/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command knucleotide reports k-mer frequencies and query counts for one record
// of a FASTA file.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/knucleotide/knucleotide-go/fasta"
	"github.com/knucleotide/knucleotide-go/knucleotide"
	"github.com/knucleotide/knucleotide-go/nucleotide"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

type options struct {
	record  string
	workers int
	chunks  int
	verbose bool
}

func (o *options) bind(cmd *cobra.Command) {
	def := knucleotide.DefaultConfig()
	cmd.PersistentFlags().StringVarP(&o.record, "record", "r", "THREE", "FASTA record to read")
	cmd.PersistentFlags().IntVarP(&o.workers, "workers", "w", def.Workers, "goroutines per computation")
	cmd.PersistentFlags().IntVarP(&o.chunks, "chunks", "c", def.Chunks, "chunks per computation")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log progress to stderr")
}

// load reads the selected record from the file named in args, stdin by default,
// and builds the engine.
func (o *options) load(args []string) (nucleotide.Sequence, *knucleotide.Engine, error) {
	if !o.verbose {
		log.SetOutput(io.Discard)
	}
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	start := time.Now()
	raw, err := fasta.ReadFile(path, o.record)
	if err != nil {
		return nucleotide.Sequence{}, nil, err
	}
	seq, err := nucleotide.NewSequence(raw)
	if err != nil {
		return nucleotide.Sequence{}, nil, fmt.Errorf("record %s: %w", o.record, err)
	}
	log.Printf("Read %d symbols of record %s in %s", seq.Len(), o.record, time.Since(start))

	engine, err := knucleotide.NewEngine(knucleotide.Config{Workers: o.workers, Chunks: o.chunks})
	if err != nil {
		return nucleotide.Sequence{}, nil, err
	}
	return seq, engine, nil
}

func rootCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "knucleotide [file|-]",
		Short: "Count k-mer frequencies and query occurrences in a FASTA record",
		Long: `knucleotide reads one record of a FASTA file (standard input by default) and prints

  - the percentage of every 1-mer and 2-mer, most frequent first
  - the exact number of occurrences of GGT, GGTA, GGTATT, GGTATTTTAATT
    and GGTATTTTAATTTATAGT`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, engine, err := o.load(args)
			if err != nil {
				return err
			}
			start := time.Now()
			report, err := engine.Analyze(seq, knucleotide.DefaultFrequencyLengths(), knucleotide.DefaultQueries())
			if err != nil {
				return err
			}
			log.Printf("Analyzed with %d workers and %d chunks in %s", o.workers, o.chunks, time.Since(start))
			_, err = report.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
	o.bind(cmd)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(sketchCommand(o))
	cmd.AddCommand(versionCommand())
	return cmd
}

func sketchCommand(o *options) *cobra.Command {
	cfg := knucleotide.DefaultSketchConfig()
	cmd := &cobra.Command{
		Use:   "sketch [file|-]",
		Short: "Estimate query counts with a count-min sketch and Bloom filter",
		Long: `sketch builds, for every query length, a count-min sketch and a Bloom filter of
the record and prints "<estimate>\t<upper bound>\t<present>\t<query>" per query.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, engine, err := o.load(args)
			if err != nil {
				return err
			}
			start := time.Now()
			estimates, err := engine.Estimate(seq, knucleotide.DefaultQueries(), cfg)
			if err != nil {
				return err
			}
			log.Printf("Sketched in %s", time.Since(start))
			return knucleotide.WriteEstimates(cmd.OutOrStdout(), estimates)
		},
	}
	cmd.Flags().Float64VarP(&cfg.RelativeError, "epsilon", "e", cfg.RelativeError, "count-min relative error")
	cmd.Flags().Float64Var(&cfg.Confidence, "confidence", cfg.Confidence, "count-min confidence")
	cmd.Flags().Float64Var(&cfg.FalsePositiveRate, "fpp", cfg.FalsePositiveRate, "Bloom filter false positive rate")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "hash seed")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "knucleotide version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
