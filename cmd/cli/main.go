package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	rootCmd   = &cobra.Command{
		Use:   "romshelf",
		Short: "Romshelf CLI - browse the ROM catalog",
		Long:  `A command-line interface for browsing, searching and downloading from the ROM catalog server.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")

	listCmd.Flags().String("search", "", "Free-text search over title and platform")
	listCmd.Flags().String("platform", "", "Exact platform filter")
	listCmd.Flags().String("region", "", "Exact region filter")
	listCmd.Flags().Int("page", 0, "Page number (1-based)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(downloadsCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items",
	Run: func(cmd *cobra.Command, args []string) {
		params := url.Values{}
		if search, _ := cmd.Flags().GetString("search"); search != "" {
			params.Set("q", search)
		}
		if platform, _ := cmd.Flags().GetString("platform"); platform != "" {
			params.Set("platform", platform)
		}
		if region, _ := cmd.Flags().GetString("region"); region != "" {
			params.Set("region", region)
		}
		if page, _ := cmd.Flags().GetInt("page"); page > 0 {
			params.Set("page", strconv.Itoa(page))
		}

		body := getJSON("/api/v1/catalog", params)

		var result struct {
			Items []struct {
				Title      string `json:"title"`
				Platform   string `json:"platform"`
				Region     string `json:"region"`
				Popular    bool   `json:"popular"`
				Downloaded bool   `json:"downloaded"`
			} `json:"items"`
			TotalItems   int      `json:"total_items"`
			TotalPages   int      `json:"total_pages"`
			CurrentPage  int      `json:"current_page"`
			PageControls []string `json:"page_controls"`
		}
		mustUnmarshal(body, &result)

		if result.TotalItems == 0 {
			fmt.Println("No items found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tPLATFORM\tREGION\tPOPULAR\tDOWNLOADED")
		for _, it := range result.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				truncate(it.Title, 60),
				it.Platform,
				it.Region,
				mark(it.Popular),
				mark(it.Downloaded))
		}
		w.Flush()

		fmt.Printf("\nPage %d/%d (%d items)  [%s]\n",
			result.CurrentPage, result.TotalPages, result.TotalItems,
			strings.Join(result.PageControls, " "))
	},
}

var getCmd = &cobra.Command{
	Use:   "get [title]",
	Short: "Show details for a catalog item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGet(os.Stdout, args[0])
	},
}

// runGet looks an item up by title and prints its details. Unlike
// download, it never records a download.
func runGet(out io.Writer, title string) {
	params := url.Values{}
	params.Set("q", title)
	body := getJSON("/api/v1/catalog", params)

	var result struct {
		Items []struct {
			Title        string `json:"title"`
			Platform     string `json:"platform"`
			Region       string `json:"region"`
			Thumbnail    string `json:"thumbnail"`
			DownloadLink string `json:"download_link"`
			Popular      bool   `json:"popular"`
			Downloaded   bool   `json:"downloaded"`
		} `json:"items"`
	}
	mustUnmarshal(body, &result)

	if len(result.Items) == 0 {
		fmt.Fprintf(os.Stderr, "No item matching %q\n", title)
		os.Exit(1)
	}

	// Prefer an exact title match, otherwise take the top-ranked hit
	item := result.Items[0]
	for _, it := range result.Items {
		if strings.EqualFold(it.Title, title) {
			item = it
			break
		}
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Title:\t%s\n", item.Title)
	fmt.Fprintf(w, "Platform:\t%s\n", item.Platform)
	fmt.Fprintf(w, "Region:\t%s\n", item.Region)
	fmt.Fprintf(w, "Thumbnail:\t%s\n", item.Thumbnail)
	fmt.Fprintf(w, "Download link:\t%s\n", item.DownloadLink)
	fmt.Fprintf(w, "Popular:\t%v\n", item.Popular)
	fmt.Fprintf(w, "Downloaded:\t%v\n", item.Downloaded)
	w.Flush()
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show available platform and region filter values",
	Run: func(cmd *cobra.Command, args []string) {
		body := getJSON("/api/v1/catalog/filters", nil)

		var result struct {
			Platforms []string `json:"platforms"`
			Regions   []string `json:"regions"`
		}
		mustUnmarshal(body, &result)

		fmt.Printf("Platforms: %s\n", strings.Join(result.Platforms, ", "))
		fmt.Printf("Regions:   %s\n", strings.Join(result.Regions, ", "))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog and session statistics",
	Run: func(cmd *cobra.Command, args []string) {
		body := getJSON("/api/v1/catalog/stats", nil)

		var result map[string]interface{}
		mustUnmarshal(body, &result)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, key := range []string{"loaded", "loading", "total_items", "view_items", "downloaded_count", "last_status", "session_id"} {
			fmt.Fprintf(w, "%s\t%v\n", key, result[key])
		}
		w.Flush()
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the catalog from its data sources",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Post(serverURL+"/api/v1/catalog/reload", "application/json", nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var result map[string]interface{}
		json.Unmarshal(body, &result)
		fmt.Printf("Catalog reloaded: %v items\n", result["items"])
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download [title]",
	Short: "Mark an item as downloaded and print its download link",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := args[0]

		params := url.Values{}
		params.Set("q", title)
		body := getJSON("/api/v1/catalog", params)

		var result struct {
			Items []struct {
				Title        string `json:"title"`
				Platform     string `json:"platform"`
				Region       string `json:"region"`
				Thumbnail    string `json:"thumbnail"`
				DownloadLink string `json:"download_link"`
			} `json:"items"`
		}
		mustUnmarshal(body, &result)

		if len(result.Items) == 0 {
			fmt.Fprintf(os.Stderr, "No item matching %q\n", title)
			os.Exit(1)
		}

		// Prefer an exact title match, otherwise take the top-ranked hit
		item := result.Items[0]
		for _, it := range result.Items {
			if strings.EqualFold(it.Title, title) {
				item = it
				break
			}
		}

		data, _ := json.Marshal(item)
		resp, err := http.Post(serverURL+"/api/v1/downloads", "application/json", bytes.NewBuffer(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusCreated {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(respBody))
			os.Exit(1)
		}

		fmt.Printf("Marked as downloaded: %s\n", item.Title)
		if item.DownloadLink != "" {
			fmt.Printf("Download link: %s\n", item.DownloadLink)
		}
	},
}

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "List items downloaded this session",
	Run: func(cmd *cobra.Command, args []string) {
		body := getJSON("/api/v1/downloads", nil)

		var records []struct {
			Title        string `json:"title"`
			Platform     string `json:"platform"`
			DownloadedAt string `json:"downloaded_at"`
		}
		mustUnmarshal(body, &records)

		if len(records) == 0 {
			fmt.Println("No downloads this session.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tPLATFORM\tDOWNLOADED AT")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\n", truncate(r.Title, 60), r.Platform, r.DownloadedAt)
		}
		w.Flush()
	},
}

// getJSON performs a GET against the server and returns the body,
// exiting with the server's error on any non-200 response
func getJSON(path string, params url.Values) []byte {
	u := serverURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	resp, err := http.Get(u)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
		os.Exit(1)
	}
	return body
}

func mustUnmarshal(body []byte, v interface{}) {
	if err := json.Unmarshal(body, v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid server response: %v\n", err)
		os.Exit(1)
	}
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

// truncate shortens s to at most max characters, counting runes so
// multi-byte titles are never cut mid-character
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
