package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// evalRecord is one optimize_log.csv row.
type evalRecord struct {
	Eval     int     `csv:"eval"`
	Fitness  float64 `csv:"fitness"`
	Lifetime float64 `csv:"lifetime"`
	Params   string  `csv:"params"`
}

// progress logs every evaluation and keeps the best parameters seen.
type progress struct {
	file   *os.File
	params *ParamVector
	total  int
	start  time.Time

	evals       int
	best        []float64
	bestFitness float64
	header      bool
}

func newProgress(path string, params *ParamVector, total int) (*progress, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &progress{
		file:        f,
		params:      params,
		total:       total,
		start:       time.Now(),
		bestFitness: 1e9,
	}, nil
}

// Record logs one evaluation of the clamped parameters raw.
func (p *progress) Record(raw []float64, fitness, lifetime float64) {
	p.evals++
	if fitness < p.bestFitness {
		p.bestFitness = fitness
		p.best = append(p.best[:0], raw...)
	}

	rec := []evalRecord{{Eval: p.evals, Fitness: fitness, Lifetime: lifetime, Params: p.params.Format(raw)}}
	var err error
	if !p.header {
		err = gocsv.Marshal(rec, p.file)
		p.header = true
	} else {
		err = gocsv.MarshalWithoutHeaders(rec, p.file)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "writing eval %d: %v\n", p.evals, err)
	}

	elapsed := time.Since(p.start)
	eta := time.Duration(p.total-p.evals) * (elapsed / time.Duration(p.evals))
	fmt.Printf("eval %d/%d: lifetime=%.2fs fitness=%.4f best=%.4f elapsed=%s eta=%s\n",
		p.evals, p.total, lifetime, fitness, p.bestFitness,
		elapsed.Round(time.Second), eta.Round(time.Second))
}

// Best returns the best parameters recorded, or nil before any evaluation.
func (p *progress) Best() []float64 { return p.best }

// BestFitness returns the lowest fitness recorded.
func (p *progress) BestFitness() float64 { return p.bestFitness }

// Evals returns the number of evaluations recorded.
func (p *progress) Evals() int { return p.evals }

// Close closes the log file.
func (p *progress) Close() error { return p.file.Close() }
