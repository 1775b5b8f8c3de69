package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "verduapp-cli",
		Short: "Verduapp CLI tool",
		Long:  `A command line interface for interacting with the Verduapp cash ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Verduapp API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	}
	rootCmd.AddCommand(healthCmd)

	var (
		period   string
		fromDate string
		toDate   string
		output   string
	)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Download the filtered entries as CSV",
		Run: func(cmd *cobra.Command, args []string) {
			exportCSV(period, fromDate, toDate, output)
		},
	}
	exportCmd.Flags().StringVar(&period, "period", "", "Period filter (today, week, month, all)")
	exportCmd.Flags().StringVar(&fromDate, "from", "", "Custom range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&toDate, "to", "", "Custom range end (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&output, "out", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)

	var summaryPeriod string
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense and balance totals",
		Run: func(cmd *cobra.Command, args []string) {
			showSummary(summaryPeriod)
		},
	}
	summaryCmd.Flags().StringVar(&summaryPeriod, "period", "today", "Period filter (today, week, month, all)")
	rootCmd.AddCommand(summaryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkHealth() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/ready")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Health check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Printf("Health check PASSED\n%s\n", string(body))
}

func exportCSV(period, fromDate, toDate, output string) {
	params := url.Values{}
	if period != "" {
		params.Set("period", period)
	}
	if fromDate != "" {
		params.Set("fromDate", fromDate)
	}
	if toDate != "" {
		params.Set("toDate", toDate)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/entries/export?" + params.Encode())
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Export FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if output == "" {
		fmt.Println(string(body))
		return
	}

	if err := os.WriteFile(output, body, 0o644); err != nil {
		fmt.Printf("Failed to write %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", output, len(body))
}

func showSummary(period string) {
	params := url.Values{}
	params.Set("period", period)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/reports/summary?" + params.Encode())
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Summary FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Income:   %v\n", result["total_income"])
	fmt.Printf("Expenses: %v\n", result["total_expenses"])
	fmt.Printf("Balance:  %v\n", result["balance"])
}
