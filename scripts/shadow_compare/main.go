// Command shadow_compare replays a set of enrollment API calls against the
// legacy system and this service and reports response differences. Used
// during cutover to verify the two backends agree before traffic moves.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type probe struct {
	Name     string          `json:"name"`
	Method   string          `json:"method"`
	Path     string          `json:"path"`
	Body     json.RawMessage `json:"body,omitempty"`
	Critical bool            `json:"critical"`
	// IgnoreKeys lists JSON keys stripped before comparison. Generated
	// values like audit ids and timestamps never match across backends.
	IgnoreKeys []string `json:"ignore_keys,omitempty"`
}

type probeFile struct {
	Probes []probe `json:"probes"`
}

type result struct {
	Probe         probe
	NewStatus     int
	LegacyStatus  int
	StatusMatch   bool
	BodyMatch     bool
	NewDuration   time.Duration
	LegacyDur     time.Duration
	Err           error
}

func main() {
	var (
		newBase    string
		legacyBase string
		probesPath string
		token      string
		timeout    time.Duration
	)

	flag.StringVar(&newBase, "new-base", "http://localhost:8080", "new API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5000", "legacy API base URL")
	flag.StringVar(&probesPath, "probes", filepath.Join("scripts", "shadow_compare", "probes.json"), "path to the probes file")
	flag.StringVar(&token, "token", os.Getenv("SHADOW_COMPARE_TOKEN"), "bearer token for guarded routes")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	probes, err := loadProbes(probesPath)
	if err != nil {
		log.Fatalf("failed to load probes: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var results []result
	breaking := 0

	for _, p := range probes {
		res := runProbe(client, newBase, legacyBase, token, p)
		if p.Critical && (res.Err != nil || !res.StatusMatch || !res.BodyMatch) {
			breaking++
		}
		results = append(results, res)
	}

	printReport(results)
	fmt.Printf("breaking diffs: %d of %d probes\n", breaking, len(results))
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadProbes(path string) ([]probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file probeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Probes) == 0 {
		return nil, fmt.Errorf("no probes defined in %s", path)
	}
	return file.Probes, nil
}

func runProbe(client *http.Client, newBase, legacyBase, token string, p probe) result {
	res := result{Probe: p}

	newStatus, newBody, newDur, err := send(client, newBase, token, p)
	if err != nil {
		res.Err = fmt.Errorf("new backend: %w", err)
		return res
	}
	legacyStatus, legacyBody, legacyDur, err := send(client, legacyBase, token, p)
	if err != nil {
		res.Err = fmt.Errorf("legacy backend: %w", err)
		return res
	}

	res.NewStatus = newStatus
	res.LegacyStatus = legacyStatus
	res.NewDuration = newDur
	res.LegacyDur = legacyDur
	res.StatusMatch = newStatus == legacyStatus
	res.BodyMatch = bodiesEqual(newBody, legacyBody, p.IgnoreKeys)
	return res
}

func send(client *http.Client, base, token string, p probe) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(p.Method))
	if method == "" {
		method = http.MethodGet
	}
	url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p.Path, "/")

	var body io.Reader
	if len(p.Body) > 0 {
		body = bytes.NewReader(p.Body)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, nil, 0, err
	}
	if len(p.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, raw, time.Since(start), nil
}

// bodiesEqual compares two JSON bodies structurally after dropping the keys
// the probe marked volatile. Non-JSON bodies fall back to a byte comparison.
func bodiesEqual(a, b []byte, ignoreKeys []string) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var av, bv interface{}
	if json.Unmarshal(a, &av) != nil || json.Unmarshal(b, &bv) != nil {
		return false
	}
	ignored := make(map[string]struct{}, len(ignoreKeys))
	for _, k := range ignoreKeys {
		ignored[k] = struct{}{}
	}
	strip(&av, ignored)
	strip(&bv, ignored)
	return reflect.DeepEqual(av, bv)
}

func strip(v *interface{}, ignored map[string]struct{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if _, skip := ignored[k]; skip {
				delete(val, k)
				continue
			}
			strip(&inner, ignored)
			val[k] = inner
		}
	case []interface{}:
		for i, inner := range val {
			strip(&inner, ignored)
			val[i] = inner
		}
	}
}

func printReport(results []result) {
	fmt.Println("shadow compare report")
	fmt.Println("---------------------")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s (%s %s)\n", status, res.Probe.Name, res.Probe.Method, res.Probe.Path)
		if res.Err != nil {
			fmt.Printf("  error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  new: %d (%s) | legacy: %d (%s)\n", res.NewStatus, res.NewDuration, res.LegacyStatus, res.LegacyDur)
		if !res.StatusMatch || !res.BodyMatch {
			fmt.Printf("  status match: %t | body match: %t | critical: %t\n", res.StatusMatch, res.BodyMatch, res.Probe.Critical)
		}
	}
}
