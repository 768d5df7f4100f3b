package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fkhayef/fairsplit/internal/money"
	"github.com/fkhayef/fairsplit/internal/server"
)

func init() {
	rootCmd.AddCommand(settleCmd)

	settleCmd.Flags().StringP("output", "o", "text", "Output format: text or json")
}

var settleCmd = &cobra.Command{
	Use:   "settle [SNAPSHOT]",
	Short: "Compute balances and a settlement plan from a JSON snapshot",
	Long: `Reads a group snapshot (members, expenses and adjustments) from a file,
or from stdin when the argument is omitted or "-", and prints every member's
balance followed by the payments that settle the group.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettle,
}

func runSettle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	if output != "text" && output != "json" {
		return fmt.Errorf("unknown output format %q", output)
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot read snapshot: %w", err)
		}
		defer f.Close()
		in = f
	}

	snap, err := readSnapshot(in)
	if err != nil {
		return err
	}
	rep, err := settle(snap, server.IntentBuilder(cfg.Payments))
	if err != nil {
		return err
	}

	if output == "json" {
		return writeJSON(cmd.OutOrStdout(), rep)
	}
	return writeText(cmd.OutOrStdout(), rep)
}

type jsonBalance struct {
	MemberID  string `json:"memberId"`
	Paid      string `json:"paid"`
	ShouldPay string `json:"shouldPay"`
	Balance   string `json:"balance"`
}

type jsonPair struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	PaymentIntent string `json:"paymentIntent"`
}

func writeJSON(w io.Writer, rep *report) error {
	out := struct {
		Balances    []jsonBalance `json:"balances"`
		TotalAmount string        `json:"totalAmount"`
		PerHead     string        `json:"perHead"`
		Settlement  []jsonPair    `json:"settlement"`
	}{
		Balances:    make([]jsonBalance, len(rep.Summary.Balances)),
		TotalAmount: money.Format(rep.Summary.TotalAmount),
		PerHead:     money.Format(rep.Summary.PerHead),
		Settlement:  make([]jsonPair, len(rep.Pairs)),
	}
	for i, b := range rep.Summary.Balances {
		out.Balances[i] = jsonBalance{
			MemberID:  b.MemberID,
			Paid:      money.Format(b.Paid),
			ShouldPay: money.Format(b.ShouldPay),
			Balance:   money.Format(b.Balance),
		}
	}
	for i, p := range rep.Pairs {
		out.Settlement[i] = jsonPair{From: p.From, To: p.To, Amount: money.Format(p.Amount), PaymentIntent: p.Intent}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, rep *report) error {
	names := make(map[string]string, len(rep.Members))
	for _, m := range rep.Members {
		names[m.ID] = m.Name
	}
	label := func(id string) string {
		if n := names[id]; n != "" {
			return n
		}
		return id
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MEMBER\tPAID\tSHOULD PAY\tBALANCE")
	for _, b := range rep.Summary.Balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", label(b.MemberID), money.Format(b.Paid), money.Format(b.ShouldPay), money.Format(b.Balance))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal %s, per head %s\n\n", money.Format(rep.Summary.TotalAmount), money.Format(rep.Summary.PerHead))

	if len(rep.Pairs) == 0 {
		fmt.Fprintln(w, "Everyone is settled up.")
		return nil
	}
	for _, p := range rep.Pairs {
		fmt.Fprintf(w, "%s pays %s %s\n  %s\n", label(p.From), label(p.To), money.Format(p.Amount), p.Intent)
	}
	return nil
}
