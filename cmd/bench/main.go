// Command bench measures resolver latency by firing a fixed number of
// identical queries at a nameserver from concurrent workers and reporting
// throughput and latency percentiles.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/jroosing/hound/internal/dnswire"
	"github.com/jroosing/hound/internal/transport"
)

func main() {
	var (
		server      = flag.String("server", "8.8.8.8:53", "nameserver HOST:PORT")
		name        = flag.String("name", "example.com", "query name")
		qtype       = flag.String("type", "A", "record type")
		concurrency = flag.Int("concurrency", 50, "number of concurrent workers")
		requests    = flag.Int("requests", 1000, "total number of requests")
		timeout     = flag.Duration("timeout", 2*time.Second, "per-request timeout")
	)
	flag.Parse()

	rt, ok := dnswire.RecordTypeFromName(*qtype)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown record type %q\n", *qtype)
		os.Exit(1)
	}
	q := dnswire.Query{
		ID:    0xBEEF,
		Flags: dnswire.RDFlag,
		Name:  *name,
		Type:  rt,
	}
	query, err := q.Marshal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	conc := max(*concurrency, 1)
	total := max(*requests, 1)
	per := total / conc
	rem := total % conc

	lat := make([]float64, 0, total)
	var latMu sync.Mutex

	t0 := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < conc; i++ {
		n := per
		if i < rem {
			n++
		}
		if n <= 0 {
			continue
		}
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			tr := &transport.UDP{Addr: *server, Timeout: *timeout}
			for j := 0; j < num; j++ {
				start := time.Now()
				resp, err := tr.Exchange(context.Background(), query)
				if err != nil {
					continue
				}
				if _, err := dnswire.ParseMessage(resp); err != nil {
					continue
				}
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				latMu.Lock()
				lat = append(lat, ms)
				latMu.Unlock()
			}
		}(n)
	}
	wg.Wait()
	elapsed := time.Since(t0).Seconds()

	if len(lat) == 0 {
		fmt.Println("no successful requests")
		return
	}
	sort.Float64s(lat)
	p50 := percentile(lat, 50)
	p95 := percentile(lat, 95)
	p99 := percentile(lat, 99)
	qps := float64(len(lat)) / elapsed

	fmt.Printf("server=%s name=%q type=%s concurrency=%d requests=%d\n", *server, *name, rt, conc, len(lat))
	fmt.Printf("elapsed_s=%.3f qps=%.1f\n", elapsed, qps)
	fmt.Printf("latency_ms p50=%.3f p95=%.3f p99=%.3f min=%.3f max=%.3f\n", p50, p95, p99, lat[0], lat[len(lat)-1])
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted))*float64(p)/100.0) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
