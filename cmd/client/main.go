// cmd/client is the CLI entry-point built with Cobra.
//
// Usage:
//
//	dtcli create mygroup      --server http://localhost:8080
//	dtcli delete mygroup      --server http://localhost:8080
//	dtcli status mygroup      --server http://localhost:8080
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverAddr string
	timeout    time.Duration
)

func main() {
	root := &cobra.Command{
		Use:   "dtcli",
		Short: "CLI client for the distributed transaction coordinator",
	}

	root.PersistentFlags().StringVarP(&serverAddr, "server", "s",
		"http://localhost:8080", "DTC intake server address")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second,
		"HTTP request timeout")

	root.AddCommand(actionCmd("create"), actionCmd("delete"), statusCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// actionCmd builds the "create"/"delete" subcommands, both of which
// dispatch through the same POST /dtc/ intake endpoint.
func actionCmd(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <groupId>",
		Short: fmt.Sprintf("%s a group across the cluster", action),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := coordinate(args[0], action)
			if err != nil {
				return err
			}
			fmt.Printf("State: %s\n", resp.State)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <groupId>",
		Short: "Show each replica's raw status for a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := getRaw(fmt.Sprintf("/cluster/status/%s", args[0]))
			if err != nil {
				return err
			}
			fmt.Println(body)
			return nil
		},
	}
}

// ─── HTTP plumbing ────────────────────────────────────────────────────────────

type dtcResponse struct {
	State string `json:"State"`
}

func coordinate(groupID, action string) (*dtcResponse, error) {
	payload, err := json.Marshal(map[string]string{"groupId": groupID, "action": action})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		serverAddr+"/dtc/", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: timeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result dtcResponse
	return &result, json.NewDecoder(resp.Body).Decode(&result)
}

func getRaw(path string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverAddr+path, nil)
	if err != nil {
		return "", err
	}

	httpClient := &http.Client{Timeout: timeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}
