package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// OperationRequest represents the operation payload
type OperationRequest struct {
	OperationType string `json:"operationType"`
	Amount        int64  `json:"amount"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	Rejected     bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	RejectedRequests   int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	StatusCounts       map[int]int
	WalletStats        map[string]int // Track requests per wallet
	ScenarioStats      map[string]int // Track requests per scenario
	Lock               sync.Mutex
}

// Scenario defines one kind of request sent by the workers
type Scenario struct {
	Name          string // For stats tracking
	OperationType string // Empty for a balance read
	Amount        int64
}

func main() {

	// Define command line flags
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	walletIDsStr := flag.String("w", "", "Comma-separated list of wallet UUIDs (random ones are generated when empty)")
	walletCount := flag.Int("wallets", 3, "Number of random wallets when -w is empty")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	var walletIDs []string
	for _, idStr := range strings.Split(*walletIDsStr, ",") {
		if id, err := uuid.Parse(strings.TrimSpace(idStr)); err == nil {
			walletIDs = append(walletIDs, id.String())
		}
	}

	if len(walletIDs) == 0 {
		for i := 0; i < max(*walletCount, 1); i++ {
			walletIDs = append(walletIDs, uuid.NewString())
		}
	}

	scenarios := []Scenario{
		{"Deposit Small", "DEPOSIT", 1000},
		{"Deposit Large", "DEPOSIT", 50000},
		{"Withdraw Small", "WITHDRAW", 500},
		{"Withdraw Large", "WITHDRAW", 40000},
		{"Get Balance", "", 0},
	}

	fmt.Printf("Load testing API across %d wallets: %v\n", len(walletIDs), walletIDs)
	fmt.Printf("Scenarios: %d different combinations\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour, // Start with a high value that will be replaced
		ErrorCounts:     make(map[string]int),
		StatusCounts:    make(map[int]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		WalletStats:     make(map[string]int),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, walletIDs, scenarios, jobs, results, stats)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			stats.StatusCounts[result.StatusCode]++
			switch {
			case result.Success:
				stats.SuccessfulRequests++
			case result.Rejected:
				stats.RejectedRequests++
			default:
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime

			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.RejectedRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

func worker(baseURL string, delayMs int, walletIDs []string,
	scenarios []Scenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	for range jobs {
		// Optional delay between requests to prevent rate limiting
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		walletID := walletIDs[rand.Intn(len(walletIDs))]
		scenario := scenarios[rand.Intn(len(scenarios))]

		stats.Lock.Lock()
		stats.WalletStats[walletID]++
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		req, err := newRequest(baseURL, walletID, scenario)
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := TestResult{
			ResponseTime: responseTime,
		}

		if err != nil {
			result.Success = false
			result.Error = err
		} else {
			statusCode := resp.StatusCode
			result.StatusCode = statusCode
			result.Success = statusCode >= 200 && statusCode < 300
			// Overdrafts and reads of wallets nobody deposited into yet are expected
			result.Rejected = statusCode == http.StatusBadRequest || statusCode == http.StatusNotFound
			if !result.Success && !result.Rejected {
				result.Error = fmt.Errorf("HTTP status code %d", statusCode)
			}
			resp.Body.Close()
		}

		results <- result
	}
}

func newRequest(baseURL, walletID string, scenario Scenario) (*http.Request, error) {
	walletURL := fmt.Sprintf("%s/api/v1/wallets/%s", baseURL, walletID)

	if scenario.OperationType == "" {
		return http.NewRequest(http.MethodGet, walletURL, nil)
	}

	jsonData, err := json.Marshal(OperationRequest{
		OperationType: scenario.OperationType,
		Amount:        scenario.Amount,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, walletURL+"/operation", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func printResults(stats *TestStats) {
	completed := stats.SuccessfulRequests + stats.RejectedRequests
	throughput := float64(completed) / stats.TotalTime.Seconds()
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)
		sort.Slice(sortedTimes, func(i, j int) bool { return sortedTimes[i] < sortedTimes[j] })

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Rejected Requests:   %d (%.1f%%)\n", stats.RejectedRequests,
		float64(stats.RejectedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Throughput:          %.2f (answered requests / total time)\n", throughput)
	fmt.Printf("Theoretical TPS:     %.2f (if every request was answered)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- STATUS DISTRIBUTION -----------------")
	for status, count := range stats.StatusCounts {
		label := fmt.Sprintf("%d", status)
		if status == 0 {
			label = "no response"
		}
		fmt.Printf("%-12s: %d (%.1f%%)\n", label, count, float64(count)/float64(stats.TotalRequests)*100)
	}

	fmt.Println("\n----------------- WALLET DISTRIBUTION -----------------")
	for walletID, count := range stats.WalletStats {
		fmt.Printf("%s: %d requests (%.1f%%)\n", walletID, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}

	fmt.Println("\n================= CONCLUSION =================")
	if stats.FailedRequests == 0 {
		fmt.Println("✅ No request failed with an unexpected status")
	} else {
		fmt.Printf("❌ %d requests failed with an unexpected status\n", stats.FailedRequests)
	}
	fmt.Println("================================================")
}
