package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
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
		Use:   "securebank-cli",
		Short: "SecureBank CLI tool",
		Long:  `A command line interface for interacting with the SecureBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the SecureBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd(), otpCmd(), transferCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var (
		holder    string
		balance   string
		password  string
		overdraft string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new account",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"holder_name":     holder,
				"initial_balance": balance,
				"password":        password,
			}
			if overdraft != "" {
				payload["overdraft_limit"] = overdraft
			}
			postJSON("/api/v1/accounts", payload)
		},
	}
	createCmd.Flags().StringVar(&holder, "holder", "", "Account holder name")
	createCmd.Flags().StringVar(&balance, "balance", "0", "Initial balance")
	createCmd.Flags().StringVar(&password, "password", "", "Account password")
	createCmd.Flags().StringVar(&overdraft, "overdraft", "", "Overdraft limit (default taken from server config)")
	createCmd.MarkFlagRequired("holder")
	createCmd.MarkFlagRequired("password")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0])
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "Show an account's transaction log",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/transactions")
		},
	}

	cmd.AddCommand(createCmd, getCmd, historyCmd)

	return cmd
}

func otpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "otp",
		Short: "OTP challenge operations",
	}

	issueCmd := &cobra.Command{
		Use:   "issue <account-id>",
		Short: "Issue a challenge (the code is delivered out of band)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/otp", map[string]any{})
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify <challenge-id> <code>",
		Short: "Verify a challenge code",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/otp/verify", map[string]any{
				"challenge_id": args[0],
				"code":         args[1],
			})
		},
	}

	cmd.AddCommand(issueCmd, verifyCmd)

	return cmd
}

func transferCmd() *cobra.Command {
	var (
		from      string
		to        string
		amount    string
		password  string
		challenge string
		code      string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move funds between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers", map[string]any{
				"from_account_id": from,
				"to_account_id":   to,
				"amount":          amount,
				"password":        password,
				"challenge_id":    challenge,
				"otp_code":        code,
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source account id")
	cmd.Flags().StringVar(&to, "to", "", "Destination account id")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&password, "password", "", "Source account password")
	cmd.Flags().StringVar(&challenge, "challenge", "", "OTP challenge id")
	cmd.Flags().StringVar(&code, "code", "", "OTP code")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("challenge")
	cmd.MarkFlagRequired("code")

	return cmd
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
