// Command faultsweep exhaustively injects single-bit state faults into
// every position and bit of the state at each guarded transform of one
// encryption round, and reports how the verification layer handled each:
// corrected, unrecognized syndrome, uncorrectable, or silent corruption.
// Results go to a JSON summary and an HTML bar chart.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"SEU-AES/hamaes"
)

type outcome int

const (
	outcomeCorrected outcome = iota
	outcomeUnrecognized
	outcomeUncorrectable
	outcomeSilent
)

type stepSummary struct {
	Step          string `json:"step"`
	Round         int    `json:"round"`
	Corrected     int    `json:"corrected"`
	Unrecognized  int    `json:"unrecognized"`
	Uncorrectable int    `json:"uncorrectable"`
	Silent        int    `json:"silent_corruption"`
	Total         int    `json:"total"`
	PerBit        [8]int `json:"corrected_per_bit"`
}

type sweepSummary struct {
	Variant string        `json:"variant"`
	Seed    string        `json:"seed"`
	Round   int           `json:"round"`
	Steps   []stepSummary `json:"steps"`
}

func main() {
	variantFlag := flag.String("variant", "aes128", "cipher variant: aes128, aes192 or aes256")
	seed := flag.String("seed", "faultsweep", "seed for the key/plaintext PRNG")
	round := flag.Int("round", 1, "round to inject into")
	jsonOut := flag.String("json", "faultsweep.json", "JSON summary output path")
	htmlOut := flag.String("html", "faultsweep.html", "HTML chart output path")
	flag.Parse()

	variant, err := parseVariant(*variantFlag)
	if err != nil {
		log.Fatal(err)
	}
	summary, err := sweep(variant, *seed, *round)
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*jsonOut, data, 0o644); err != nil {
		log.Fatal(err)
	}
	if err := renderChart(*htmlOut, summary); err != nil {
		log.Fatal(err)
	}

	for _, s := range summary.Steps {
		fmt.Printf("%-12s round %d: %3d corrected, %3d unrecognized, %3d uncorrectable, %d silent (of %d)\n",
			s.Step, s.Round, s.Corrected, s.Unrecognized, s.Uncorrectable, s.Silent, s.Total)
	}
	fmt.Printf("summary written to %s, chart to %s\n", *jsonOut, *htmlOut)
}

func parseVariant(s string) (hamaes.Variant, error) {
	switch s {
	case "aes128":
		return hamaes.AES128, nil
	case "aes192":
		return hamaes.AES192, nil
	case "aes256":
		return hamaes.AES256, nil
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// sweep derives a key and plaintext from the seed, records the fault-free
// ciphertext, then replays the encryption once per (step, position, bit)
// with that single bit flipped inside the guard window.
func sweep(v hamaes.Variant, seed string, round int) (*sweepSummary, error) {
	p, err := v.Params()
	if err != nil {
		return nil, err
	}
	if round < 0 || round > p.Nr {
		return nil, fmt.Errorf("round %d out of range for %s", round, v)
	}

	prng, err := hamaes.NewSeedStream([]byte(seed))
	if err != nil {
		return nil, err
	}
	key := make([]byte, p.KeyLen)
	plaintext := make([]byte, hamaes.BlockLen)
	if _, err := io.ReadFull(prng, key); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(prng, plaintext); err != nil {
		return nil, err
	}

	reference := append([]byte(nil), plaintext...)
	clean, err := hamaes.New(v, key)
	if err != nil {
		return nil, err
	}
	if err := clean.EncryptBlock(reference); err != nil {
		return nil, fmt.Errorf("fault-free encryption failed: %w", err)
	}

	summary := &sweepSummary{Variant: v.String(), Seed: seed, Round: round}
	for _, step := range hamaes.Steps {
		if !stepRunsInRound(step, round, p.Nr) {
			continue
		}
		ss := stepSummary{Step: step.String(), Round: round}
		for pos := 0; pos < hamaes.BlockLen; pos++ {
			for bit := uint(0); bit < 8; bit++ {
				res, err := injectOne(v, key, plaintext, reference, step, round, pos, bit)
				if err != nil {
					return nil, err
				}
				ss.Total++
				switch res {
				case outcomeCorrected:
					ss.Corrected++
					ss.PerBit[bit]++
				case outcomeUnrecognized:
					ss.Unrecognized++
				case outcomeUncorrectable:
					ss.Uncorrectable++
				case outcomeSilent:
					ss.Silent++
				}
			}
		}
		summary.Steps = append(summary.Steps, ss)
	}
	return summary, nil
}

// stepRunsInRound mirrors the encryption state machine: round 0 is only
// AddRoundKey, the final round drops MixColumns and runs AddRoundKey last.
func stepRunsInRound(step hamaes.Step, round, nr int) bool {
	switch {
	case round == 0:
		return step == hamaes.StepAddRoundKey
	case round == nr:
		return step != hamaes.StepMixColumns
	default:
		return true
	}
}

func injectOne(v hamaes.Variant, key, plaintext, reference []byte, step hamaes.Step, round, pos int, bit uint) (outcome, error) {
	c, err := hamaes.New(v, key)
	if err != nil {
		return 0, err
	}
	fired := false
	c.SetFaultHook(func(s hamaes.Step, r int, st *hamaes.State) {
		if fired || s != step || r != round {
			return
		}
		fired = true
		st[pos/4][pos%4] ^= 1 << bit
	})

	buf := append([]byte(nil), plaintext...)
	err = c.EncryptBlock(buf)
	switch {
	case err == nil && bytes.Equal(buf, reference):
		return outcomeCorrected, nil
	case err == nil:
		return outcomeSilent, nil
	case errors.Is(err, hamaes.ErrUnrecognizedSyndrome):
		return outcomeUnrecognized, nil
	case errors.Is(err, hamaes.ErrUncorrectable):
		return outcomeUncorrectable, nil
	default:
		return 0, err
	}
}

func renderChart(path string, summary *sweepSummary) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Single-bit fault correction coverage",
			Subtitle: fmt.Sprintf("%s, round %d, corrected faults per state bit", summary.Variant, summary.Round),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bits := make([]string, 8)
	for i := range bits {
		bits[i] = fmt.Sprintf("bit %d", i)
	}
	bar.SetXAxis(bits)
	for _, s := range summary.Steps {
		items := make([]opts.BarData, 8)
		for i, n := range s.PerBit {
			items[i] = opts.BarData{Value: n}
		}
		bar.AddSeries(s.Step, items)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bar.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
