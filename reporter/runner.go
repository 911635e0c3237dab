package reporter

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"pengine-e2e/commands"
	"pengine-e2e/expect"
	"pengine-e2e/toolkit"
)

// Case is one request-and-assert scenario.
type Case struct {
	Name string
	Run  func(ctx context.Context, env *toolkit.Env) error
}

// Suite groups cases against one resource/action. A Serial suite forms an
// isolation group: its cases run in declared order on a single worker
// because later cases depend on session mutations made by earlier ones.
// Non-serial suites are parallel-safe and may run concurrently with any
// other suite.
type Suite struct {
	Name   string
	Serial bool
	Cases  []Case
}

// Run executes the suites and returns the aggregated report. Every suite
// gets its own Env (and therefore its own credential session); the HTTP
// client is shared, being stateless.
func Run(ctx context.Context, suites []Suite, cfg toolkit.HarnessConfig) toolkit.RunReport {
	client := toolkit.NewClient(cfg.BaseURL, cfg.Timeout)

	var serial, parallel []Suite
	for _, s := range suites {
		if s.Serial {
			serial = append(serial, s)
		} else {
			parallel = append(parallel, s)
		}
	}
	log.Printf("reporter.run: start base_url=%s suites=%d serial=%d parallel=%d workers=%d",
		cfg.BaseURL, len(suites), len(serial), len(parallel), cfg.Workers)

	var rep toolkit.RunReport

	// Serial suites go first, one at a time, so their shared-identity
	// mutations (password rotations and the like) never overlap a parallel
	// reader.
	for _, s := range serial {
		collect(&rep, runSuite(ctx, s, toolkit.NewEnv(client, cfg)))
	}

	results := make(chan []toolkit.CaseResult, len(parallel))
	work := make(chan Suite)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range work {
				results <- runSuite(ctx, s, toolkit.NewEnv(client, cfg))
			}
		}()
	}
	for _, s := range parallel {
		work <- s
	}
	close(work)
	wg.Wait()
	close(results)
	for rs := range results {
		collect(&rep, rs)
	}

	log.Printf("reporter.run: completed total=%d passed=%d failed=%d",
		rep.Summary.Total, rep.Summary.Passed, rep.Summary.Failed)
	return rep
}

func collect(rep *toolkit.RunReport, results []toolkit.CaseResult) {
	for _, r := range results {
		rep.Summary.Total++
		if r.Passed {
			rep.Summary.Passed++
		} else {
			rep.Summary.Failed++
		}
		rep.Results = append(rep.Results, r)
	}
}

func runSuite(ctx context.Context, s Suite, env *toolkit.Env) []toolkit.CaseResult {
	log.Printf("reporter.suite: start suite=%s cases=%d serial=%t", s.Name, len(s.Cases), s.Serial)
	results := make([]toolkit.CaseResult, 0, len(s.Cases))
	for _, c := range s.Cases {
		results = append(results, runCase(ctx, s, c, env))
	}
	return results
}

func runCase(ctx context.Context, s Suite, c Case, env *toolkit.Env) toolkit.CaseResult {
	cr := toolkit.CaseResult{Suite: s.Name, Case: c.Name}

	start := time.Now()
	err := c.Run(ctx, env)
	cr.LatencyMS = time.Since(start).Milliseconds()

	if err == nil {
		cr.Passed = true
		log.Printf("reporter.case: passed suite=%s case=%s latency_ms=%d", s.Name, c.Name, cr.LatencyMS)
		return cr
	}

	cr.Passed = false
	cr.Failure = classify(err)
	cr.Error = err.Error()
	log.Printf("reporter.case: failed suite=%s case=%s failure=%s error=%s",
		s.Name, c.Name, cr.Failure, firstLine(err.Error()))
	return cr
}

// classify maps an error to the failure taxonomy. Transport wins over
// precondition: a command that failed because the backend was unreachable is
// an infrastructure problem, not a bad fixture.
func classify(err error) string {
	var te *toolkit.TransportError
	if errors.As(err, &te) {
		return toolkit.FailureTransport
	}
	var pe *commands.PreconditionError
	if errors.As(err, &pe) {
		return toolkit.FailurePrecondition
	}
	var me *expect.MatchError
	if errors.As(err, &me) {
		return toolkit.FailureAssertion
	}
	return toolkit.FailureUnexpected
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
