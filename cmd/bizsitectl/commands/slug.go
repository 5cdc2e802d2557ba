package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/bizsite/internal/slug"
	"github.com/pkordes/bizsite/internal/tenant"
)

func newSlugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <text>...",
		Short: "Show the subdomain slug generated for each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INPUT\tSLUG\tVALID\tSUGGESTION")
			for _, text := range args {
				s := slug.Slugify(text)
				fmt.Fprintf(tw, "%q\t%s\t%t\t%s\n", text, orDash(s), slug.ValidGenerated(s), slug.Suggest(text))
			}
			return tw.Flush()
		},
	}
}

func newResolveCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <host>...",
		Short: "Classify Host header values as main site or tenant site",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := tenant.NewResolver(e.v.GetString("root-domain"), splitList(e.v.GetString("reserved-subdomains")))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "HOST\tKIND\tSLUG")
			for _, host := range args {
				c := r.Resolve(host)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", host, c.Kind, orDash(c.Slug))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("root-domain", "", "platform root domain (default $ROOT_DOMAIN or localhost)")
	cmd.Flags().String("reserved-subdomains", "", "comma-separated reserved labels (default $RESERVED_SUBDOMAINS or www,api)")
	_ = e.v.BindPFlag("root-domain", cmd.Flags().Lookup("root-domain"))
	_ = e.v.BindPFlag("reserved-subdomains", cmd.Flags().Lookup("reserved-subdomains"))
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
