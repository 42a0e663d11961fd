package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/middleware"
	timeProvider "github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/time"
)

// scenario is one kind of request a simulated user sends
type scenario struct {
	name  string
	build func(baseURL string, from, to uint64) (*http.Request, error)
}

// result is the outcome of one request
type result struct {
	scenario string
	status   int
	latency  time.Duration
	err      error
}

type stats struct {
	mu        sync.Mutex
	latencies []time.Duration
	byStatus  map[int]int
	byName    map[string]int
	errors    map[string]int
}

func main() {
	concurrency := flag.Int("c", 8, "Number of concurrent workers")
	total := flag.Int("n", 500, "Total number of requests")
	usersFlag := flag.String("u", "2,3,4", "Comma-separated user ids to act as")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	secret := flag.String("secret", os.Getenv("SH_JWT_SECRET"), "JWT secret used to mint bearer tokens")
	delayMs := flag.Int("delay", 0, "Delay between requests per worker in milliseconds")
	flag.Parse()

	var userIDs []uint64
	for _, raw := range strings.Split(*usersFlag, ",") {
		var id uint64
		if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d", &id); err == nil && id > 0 {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) < 2 {
		fmt.Println("need at least two user ids")
		os.Exit(2)
	}
	if *secret == "" {
		fmt.Println("a JWT secret is required (-secret or SH_JWT_SECRET)")
		os.Exit(2)
	}

	tokens := middleware.NewTokenService(*secret, time.Hour, timeProvider.NewRealTimeProvider())
	bearer := make(map[uint64]string, len(userIDs))
	for _, id := range userIDs {
		token, err := tokens.Issue(id, entity.RoleUser)
		if err != nil {
			fmt.Println("failed to mint token:", err)
			os.Exit(1)
		}
		bearer[id] = "Bearer " + token
	}

	scenarios := []scenario{
		{"transfer", func(base string, from, to uint64) (*http.Request, error) {
			body, _ := json.Marshal(map[string]any{"toUserId": to, "amount": fmt.Sprintf("%d.%02d", rand.Intn(3), rand.Intn(100)+1)})
			return http.NewRequest(http.MethodPost, base+"/api/v1/wallet/transfer", bytes.NewReader(body))
		}},
		{"balance", func(base string, _, _ uint64) (*http.Request, error) {
			return http.NewRequest(http.MethodGet, base+"/api/v1/wallet", nil)
		}},
		{"history", func(base string, _, _ uint64) (*http.Request, error) {
			return http.NewRequest(http.MethodGet, base+"/api/v1/wallet/transactions?limit=10", nil)
		}},
		{"follow", func(base string, _, to uint64) (*http.Request, error) {
			return http.NewRequest(http.MethodPost, fmt.Sprintf("%s/api/v1/follows/%d", base, to), nil)
		}},
		{"rooms", func(base string, _, _ uint64) (*http.Request, error) {
			return http.NewRequest(http.MethodGet, base+"/api/v1/rooms", nil)
		}},
	}

	fmt.Printf("Load testing %s as users %v with %d workers, %d requests\n", *baseURL, userIDs, *concurrency, *total)

	s := &stats{
		latencies: make([]time.Duration, 0, *total),
		byStatus:  make(map[int]int),
		byName:    make(map[string]int),
		errors:    make(map[string]int),
	}
	jobs := make(chan struct{}, *total)
	for i := 0; i < *total; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	client := &http.Client{Timeout: 10 * time.Second}
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if *delayMs > 0 {
					time.Sleep(time.Duration(*delayMs) * time.Millisecond)
				}
				from := userIDs[rand.Intn(len(userIDs))]
				to := from
				for to == from {
					to = userIDs[rand.Intn(len(userIDs))]
				}
				sc := scenarios[rand.Intn(len(scenarios))]
				s.record(send(client, sc, *baseURL, bearer[from], from, to))
			}
		}()
	}
	wg.Wait()

	s.print(time.Since(start))
}

func send(client *http.Client, sc scenario, baseURL, bearer string, from, to uint64) result {
	req, err := sc.build(baseURL, from, to)
	if err != nil {
		return result{scenario: sc.name, err: err}
	}
	req.Header.Set("Authorization", bearer)
	req.Header.Set("Content-Type", "application/json")

	began := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(began)
	if err != nil {
		return result{scenario: sc.name, latency: latency, err: err}
	}
	_ = resp.Body.Close()
	return result{scenario: sc.name, status: resp.StatusCode, latency: latency}
}

func (s *stats) record(r result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byName[r.scenario]++
	if r.err != nil {
		s.errors[r.err.Error()]++
		return
	}
	s.byStatus[r.status]++
	s.latencies = append(s.latencies, r.latency)
}

func (s *stats) print(elapsed time.Duration) {
	sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
	pct := func(p int) time.Duration {
		if len(s.latencies) == 0 {
			return 0
		}
		return s.latencies[min(len(s.latencies)*p/100, len(s.latencies)-1)]
	}

	completed := len(s.latencies)
	fmt.Println("\n================= RESULTS =================")
	fmt.Printf("Completed:   %d in %.2fs (%.1f req/s)\n", completed, elapsed.Seconds(), float64(completed)/elapsed.Seconds())
	fmt.Printf("Latency:     p50 %v  p90 %v  p99 %v\n", pct(50), pct(90), pct(99))

	fmt.Println("\n----------------- STATUS -----------------")
	codes := make([]int, 0, len(s.byStatus))
	for code := range s.byStatus {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	serverErrors := 0
	for _, code := range codes {
		fmt.Printf("%d: %d\n", code, s.byStatus[code])
		if code >= 500 {
			serverErrors += s.byStatus[code]
		}
	}

	fmt.Println("\n----------------- SCENARIOS -----------------")
	for name, count := range s.byName {
		fmt.Printf("%-10s %d\n", name, count)
	}

	if len(s.errors) > 0 {
		fmt.Println("\n----------------- TRANSPORT ERRORS -----------------")
		for msg, count := range s.errors {
			fmt.Printf("%-50s %d\n", msg, count)
		}
	}

	// 402 is an expected outcome under contention; 5xx is not
	fmt.Println("\n==========================================")
	if serverErrors > 0 {
		fmt.Printf("FAIL: %d server errors\n", serverErrors)
		os.Exit(1)
	}
	fmt.Println("OK: no server errors")
}
